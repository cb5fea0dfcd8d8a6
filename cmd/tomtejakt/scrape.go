package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/crawl"
	"github.com/fwojciec/tomtejakt/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	municipalities, err := loadMunicipalities(c.Municipalities)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
		return err
	}

	if c.Municipality != "" {
		municipalities = filterByName(municipalities, c.Municipality)
		if len(municipalities) == 0 {
			return tomtejakt.Errorf(tomtejakt.ENOTFOUND, "municipality %q not in reference data", c.Municipality)
		}
	}

	locations := tomtejakt.LocationTable{}
	if c.Locations != "" {
		locations, err = loadLocations(c.Locations)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tomtejakt.ErrorMessage(err))
			return err
		}
	}

	var categories []tomtejakt.Category
	if c.Category != "" {
		categories = []tomtejakt.Category{tomtejakt.Category(c.Category)}
	}

	fetcher := deps.Fetcher
	if c.SnapshotDir != "" {
		fetcher = fs.NewSnapshotFetcher(fetcher, c.SnapshotDir)
	}

	scraper := &crawl.Scraper{
		Fetcher:           fetcher,
		Listings:          deps.Listings,
		Log:               deps.Log,
		Locations:         locations,
		Categories:        categories,
		PagePacer:         crawl.NewIntervalPacer(time.Duration(c.PageDelay) * time.Second),
		DetailPacer:       crawl.NewIntervalPacer(time.Duration(c.DetailDelay) * time.Second),
		MunicipalityPacer: crawl.NewIntervalPacer(time.Duration(c.PageDelay) * time.Second),
		MaxPages:          c.MaxPages,
	}

	progress := func(p tomtejakt.ScrapeProgress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s (%s): %v\n", p.Index, p.Total, p.Municipality, p.Category, p.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s): %d listings\n", p.Index, p.Total, p.Municipality, p.Category, p.Found)
	}

	result, err := scraper.Run(deps.Ctx, municipalities, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d queries, %d listings, %d failed\n",
		result.RunID, result.Queries, result.Listings, result.Failed)
	return nil
}

func loadMunicipalities(path string) ([]*tomtejakt.Municipality, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tomtejakt.LoadMunicipalities(f)
}

func loadLocations(path string) (tomtejakt.LocationTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tomtejakt.LoadLocationTable(f)
}

func filterByName(municipalities []*tomtejakt.Municipality, name string) []*tomtejakt.Municipality {
	var out []*tomtejakt.Municipality
	for _, m := range municipalities {
		if m.Name == name || tomtejakt.PrimaryName(m.Name) == name {
			out = append(out, m)
		}
	}
	return out
}
