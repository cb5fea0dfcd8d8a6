package main

import (
	"fmt"

	"github.com/fwojciec/tomtejakt"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter, err := deps.Translator.Translate(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
		return err
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	listings, err := deps.Listings.FindListings(deps.Ctx, *filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings matched.")
		return nil
	}

	for _, l := range listings {
		printListingLine(deps.Stdout, l)
	}

	return nil
}
