package main

import (
	"fmt"

	"github.com/fwojciec/tomtejakt"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	listing, err := deps.Listings.FindListingByID(deps.Ctx, c.Finnkode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
		return err
	}

	out := deps.Stdout
	fmt.Fprintf(out, "%s\n", listing.Title)
	fmt.Fprintf(out, "  finnkode:    %s\n", listing.ID)
	fmt.Fprintf(out, "  category:    %s\n", listing.Category)
	fmt.Fprintf(out, "  address:     %s\n", listing.Address)
	if listing.PriceText != "" {
		fmt.Fprintf(out, "  price:       %s\n", listing.PriceText)
	}
	if listing.TotalPrice != nil {
		fmt.Fprintf(out, "  total price: %d\n", *listing.TotalPrice)
	}
	if listing.Area != nil {
		fmt.Fprintf(out, "  area:        %d m²\n", *listing.Area)
	}
	if listing.Bedrooms != nil {
		fmt.Fprintf(out, "  bedrooms:    %d\n", *listing.Bedrooms)
	}
	if listing.Category == tomtejakt.CategoryPlot {
		fmt.Fprintf(out, "  obligation:  %s\n", listing.BuildingObligation)
		if listing.BuildingObligationText != "" {
			fmt.Fprintf(out, "    %q\n", listing.BuildingObligationText)
		}
		fmt.Fprintf(out, "  developed:   %s\n", developedLabel(listing.IsDeveloped))
		if listing.PlotOwned != "" {
			fmt.Fprintf(out, "  ownership:   %s\n", listing.PlotOwned)
		}
		if listing.Cadastre != "" {
			fmt.Fprintf(out, "  cadastre:    %s\n", listing.Cadastre)
		}
		if listing.Facilities != "" {
			fmt.Fprintf(out, "  facilities:  %s\n", listing.Facilities)
		}
		if listing.Utilities != "" {
			fmt.Fprintf(out, "  utilities:   %s\n", listing.Utilities)
		}
	}
	fmt.Fprintf(out, "  url:         %s\n", listing.FinnURL)
	fmt.Fprintf(out, "  first seen:  %s\n", listing.FirstSeen.Format("2006-01-02"))
	fmt.Fprintf(out, "  last seen:   %s\n", listing.LastSeen.Format("2006-01-02"))

	return nil
}

func developedLabel(v *int) string {
	switch {
	case v == nil:
		return "unknown"
	case *v == 1:
		return "yes"
	default:
		return "no"
	}
}
