// Package tomtejakt scrapes real-estate listings from finn.no and produces
// normalized, classified records for storage and search. It decodes the page
// state embedded in finn's HTML (two generations of encoding), locates
// listing and pagination data without relying on a stable response schema,
// and — for land plots — fetches detail pages and classifies building
// obligation and development status from Norwegian free text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, finn/, crawl/).
package tomtejakt
