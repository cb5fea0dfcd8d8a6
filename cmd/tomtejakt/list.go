package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/tomtejakt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := tomtejakt.ListingFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Municipality != "" {
		filter.MunicipalityCode = &c.Municipality
	}
	if c.Category != "" {
		category := tomtejakt.Category(c.Category)
		filter.Category = &category
	}
	if c.Obligation != "" {
		obligation := tomtejakt.Obligation(c.Obligation)
		filter.Obligation = &obligation
	}
	if c.Developed != nil {
		filter.IsDeveloped = c.Developed
	}
	if c.New {
		isNew := true
		filter.IsNew = &isNew
	}
	if c.MaxPrice > 0 {
		filter.MaxPrice = &c.MaxPrice
	}
	if c.MinArea > 0 {
		filter.MinArea = &c.MinArea
	}

	listings, err := deps.Listings.FindListings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings found. Use 'tomtejakt scrape' to fetch some.")
		return nil
	}

	for _, l := range listings {
		printListingLine(deps.Stdout, l)
	}

	return nil
}

func printListingLine(w io.Writer, l *tomtejakt.Listing) {
	price := l.PriceText
	if price == "" {
		price = "pris ukjent"
	}
	marker := " "
	if l.IsNew {
		marker = "*"
	}
	fmt.Fprintf(w, "%s %-10s %-14s %s  %s\n", marker, l.ID, price, l.Title, l.Address)
}
