package main

import (
	"context"
	"io"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Listings   tomtejakt.ListingService
	Log        tomtejakt.ScrapeLogService
	Fetcher    tomtejakt.Fetcher
	Translator tomtejakt.FilterTranslator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable info-level logging"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape finn.no listings for the configured municipalities"`
	List   ListCmd   `cmd:"" help:"List stored listings"`
	Show   ShowCmd   `cmd:"" help:"Show one listing by finnkode"`
	Search SearchCmd `cmd:"" help:"Search listings with a natural language query"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Municipalities string `arg:"" help:"Path to municipality reference JSON" type:"existingfile"`
	Locations      string `help:"Path to finn location code table JSON" type:"existingfile"`
	Municipality   string `short:"m" help:"Scrape a single municipality by name"`
	Category       string `short:"c" help:"Restrict to one category (home or tomt)" enum:"home,tomt," default:""`
	PageDelay      int    `default:"2" help:"Seconds between search page fetches"`
	DetailDelay    int    `default:"3" help:"Seconds between detail fetches"`
	MaxPages       int    `default:"10" help:"Search page ceiling per query"`
	SnapshotDir    string `help:"Save every fetched page under this directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Municipality string `short:"m" help:"Filter by municipality code"`
	Category     string `short:"c" help:"Filter by category (home or tomt)" enum:"home,tomt," default:""`
	Obligation   string `help:"Filter by building obligation" enum:"none,has_clause,has_deadline,unknown," default:""`
	Developed    *int   `help:"Filter by development status (1 or 0)"`
	New          bool   `help:"Only listings first seen in the latest run"`
	MaxPrice     int    `help:"Maximum price in NOK"`
	MinArea      int    `help:"Minimum plot area in square meters"`
	Limit        int    `default:"50" help:"Maximum number of rows"`
	Offset       int    `help:"Number of rows to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Finnkode string `arg:"" help:"Finn ad identifier"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Natural language query, e.g. 'tomter i Alta uten byggeplikt under 500000'"`
}
