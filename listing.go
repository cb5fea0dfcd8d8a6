package tomtejakt

import (
	"context"
	"time"
)

// Category distinguishes built dwellings from land-only plots. It is always
// set from the query context, never inferred from provider data.
type Category string

// Listing categories.
const (
	CategoryHome Category = "home"
	CategoryPlot Category = "tomt"
)

// Obligation models the byggeplikt (building obligation) status of a plot.
type Obligation string

// Building obligation verdicts.
const (
	ObligationNone     Obligation = "none"
	ObligationClause   Obligation = "has_clause"
	ObligationDeadline Obligation = "has_deadline"
	ObligationUnknown  Obligation = "unknown"
)

// Ownership models the land ownership form of a plot.
// Empty string means unknown.
type Ownership string

// Plot ownership forms.
const (
	OwnershipFreehold  Ownership = "selveier"
	OwnershipLeasehold Ownership = "tomtefeste"
)

// Listing is the canonical record produced by the pipeline. Pointer fields
// distinguish "absent" from zero; plot enrichment fields stay at their zero
// values for home listings.
type Listing struct {
	ID           string   `json:"id"` // finn ad identifier, primary key
	Title        string   `json:"title"`
	Price        *int     `json:"price"`
	PriceText    string   `json:"priceText"`
	Address      string   `json:"address"`
	Area         *int     `json:"area"` // m²
	Bedrooms     *int     `json:"bedrooms"`
	PropertyType string   `json:"propertyType"`
	ImageURL     string   `json:"imageUrl"`
	FinnURL      string   `json:"finnUrl"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	SharedCost   int      `json:"sharedCost"`
	SharedDebt   int      `json:"sharedDebt"`
	Category     Category `json:"category"`

	// Plot classification. IsDeveloped is 1, 0, or nil (unknown) and is
	// always nil for home listings.
	IsDeveloped            *int       `json:"isDeveloped"`
	BuildingObligation     Obligation `json:"buildingObligation"`
	BuildingObligationText string     `json:"buildingObligationText"`

	// Plot enrichment, filled by the detail pass.
	PlotOwned       Ownership `json:"plotOwned"`
	TotalPrice      *int      `json:"totalPrice"`
	TaxValue        *int      `json:"taxValue"`
	Cadastre        string    `json:"cadastre"`
	Facilities      string    `json:"facilities"`
	Regulations     string    `json:"regulations"`
	Utilities       string    `json:"utilities"`
	YearlyCostsText string    `json:"yearlyCostsText"`

	// Storage-owned identity and staleness tracking. ContentHash
	// fingerprints the mutable fields so consumers can detect changes
	// between sightings.
	MunicipalityCode string    `json:"municipalityCode"`
	ContentHash      string    `json:"contentHash"`
	IsNew            bool      `json:"isNew"`
	FirstSeen        time.Time `json:"firstSeen"`
	LastSeen         time.Time `json:"lastSeen"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return Errorf(EINVALID, "listing ID required")
	}
	if l.FinnURL == "" {
		return Errorf(EINVALID, "listing finn URL required")
	}
	if l.Category != CategoryHome && l.Category != CategoryPlot {
		return Errorf(EINVALID, "listing category must be %q or %q", CategoryHome, CategoryPlot)
	}
	return nil
}

// ListingService is the storage collaborator. It owns identity continuity
// (new vs. previously seen) and staleness eviction; the pipeline itself is
// stateless.
type ListingService interface {
	// UpsertListings inserts or updates listings by ID. First insertion
	// sets first_seen and marks the listing new; every subsequent sighting
	// refreshes all mutable fields and last_seen and clears the new flag.
	UpsertListings(ctx context.Context, municipalityCode string, listings []*Listing) error

	// EvictStale deletes listings for the municipality whose last_seen is
	// older than cutoff and returns the number removed. Callers must only
	// invoke it after writing a non-empty batch.
	EvictStale(ctx context.Context, municipalityCode string, cutoff time.Time) (int, error)

	// FindListings retrieves listings matching the filter.
	FindListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)

	// FindListingByID retrieves a listing by finn ad identifier.
	// Returns ENOTFOUND if the listing does not exist.
	FindListingByID(ctx context.Context, id string) (*Listing, error)
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	MunicipalityCode *string     `json:"municipalityCode"`
	Category         *Category   `json:"category"`
	Obligation       *Obligation `json:"obligation"`
	IsDeveloped      *int        `json:"isDeveloped"`
	MaxPrice         *int        `json:"maxPrice"`
	MinArea          *int        `json:"minArea"`
	IsNew            *bool       `json:"isNew"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
