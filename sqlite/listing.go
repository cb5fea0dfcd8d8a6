package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tomtejakt"
)

// Compile-time interface verification.
var _ tomtejakt.ListingService = (*ListingService)(nil)

// ListingService implements tomtejakt.ListingService using SQLite.
type ListingService struct {
	db *DB
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

// UpsertListings inserts or updates listings by ID. A first sighting sets
// first_seen and marks the listing new; later sightings refresh mutable
// fields and last_seen and clear the new flag. first_seen is never touched
// by an update. The whole batch is written in one transaction, so a
// mid-batch failure leaves the table unchanged.
func (s *ListingService) UpsertListings(ctx context.Context, municipalityCode string, listings []*tomtejakt.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, listing := range listings {
		if listing.MunicipalityCode == "" {
			listing.MunicipalityCode = municipalityCode
		}
		if err := listing.Validate(); err != nil {
			return err
		}
		listing.ContentHash = contentHash(listing)

		_, err := tx.ExecContext(ctx, `
			INSERT INTO listings (
				id, municipality_code, category, title, price, price_text,
				address, area, bedrooms, property_type, image_url, finn_url,
				latitude, longitude, shared_cost, shared_debt,
				is_developed, building_obligation, building_obligation_text,
				plot_owned, total_price, tax_value, cadastre, facilities,
				regulations, utilities, yearly_costs_text,
				content_hash, is_new, first_seen, last_seen
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				municipality_code = excluded.municipality_code,
				category = excluded.category,
				title = excluded.title,
				price = excluded.price,
				price_text = excluded.price_text,
				address = excluded.address,
				area = excluded.area,
				bedrooms = excluded.bedrooms,
				property_type = excluded.property_type,
				image_url = excluded.image_url,
				finn_url = excluded.finn_url,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				shared_cost = excluded.shared_cost,
				shared_debt = excluded.shared_debt,
				is_developed = excluded.is_developed,
				building_obligation = excluded.building_obligation,
				building_obligation_text = excluded.building_obligation_text,
				plot_owned = excluded.plot_owned,
				total_price = excluded.total_price,
				tax_value = excluded.tax_value,
				cadastre = excluded.cadastre,
				facilities = excluded.facilities,
				regulations = excluded.regulations,
				utilities = excluded.utilities,
				yearly_costs_text = excluded.yearly_costs_text,
				content_hash = excluded.content_hash,
				is_new = 0,
				last_seen = excluded.last_seen
		`,
			listing.ID, listing.MunicipalityCode, string(listing.Category), listing.Title,
			nullInt(listing.Price), listing.PriceText, listing.Address,
			nullInt(listing.Area), nullInt(listing.Bedrooms), listing.PropertyType,
			listing.ImageURL, listing.FinnURL,
			nullFloat(listing.Latitude), nullFloat(listing.Longitude),
			listing.SharedCost, listing.SharedDebt,
			nullInt(listing.IsDeveloped), string(listing.BuildingObligation), listing.BuildingObligationText,
			string(listing.PlotOwned), nullInt(listing.TotalPrice), nullInt(listing.TaxValue),
			listing.Cadastre, listing.Facilities, listing.Regulations, listing.Utilities,
			listing.YearlyCostsText,
			listing.ContentHash, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert listing %s: %w", listing.ID, err)
		}
	}

	return tx.Commit()
}

// EvictStale deletes listings for the municipality whose last_seen is older
// than cutoff and returns the number removed.
func (s *ListingService) EvictStale(ctx context.Context, municipalityCode string, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM listings
		WHERE municipality_code = ? AND last_seen < ?
	`, municipalityCode, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}

// FindListingByID retrieves a listing by finn ad identifier.
func (s *ListingService) FindListingByID(ctx context.Context, id string) (*tomtejakt.Listing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE id = ?
	`, id)

	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, tomtejakt.Errorf(tomtejakt.ENOTFOUND, "listing not found")
	}
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// FindListings retrieves listings matching the filter, newest sighting first.
func (s *ListingService) FindListings(ctx context.Context, filter tomtejakt.ListingFilter) ([]*tomtejakt.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + listingColumns + " FROM listings WHERE 1=1")

	if filter.MunicipalityCode != nil {
		query.WriteString(" AND municipality_code = ?")
		args = append(args, *filter.MunicipalityCode)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Obligation != nil {
		query.WriteString(" AND building_obligation = ?")
		args = append(args, string(*filter.Obligation))
	}
	if filter.IsDeveloped != nil {
		query.WriteString(" AND is_developed = ?")
		args = append(args, *filter.IsDeveloped)
	}
	if filter.MaxPrice != nil {
		query.WriteString(" AND price IS NOT NULL AND price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.MinArea != nil {
		query.WriteString(" AND area IS NOT NULL AND area >= ?")
		args = append(args, *filter.MinArea)
	}
	if filter.IsNew != nil {
		query.WriteString(" AND is_new = ?")
		args = append(args, boolToInt(*filter.IsNew))
	}

	query.WriteString(" ORDER BY last_seen DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*tomtejakt.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

const listingColumns = `id, municipality_code, category, title, price, price_text,
	address, area, bedrooms, property_type, image_url, finn_url,
	latitude, longitude, shared_cost, shared_debt,
	is_developed, building_obligation, building_obligation_text,
	plot_owned, total_price, tax_value, cadastre, facilities,
	regulations, utilities, yearly_costs_text, content_hash, is_new, first_seen, last_seen`

// scanner abstracts *sql.Row and *sql.Rows for scanListing.
type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (*tomtejakt.Listing, error) {
	var listing tomtejakt.Listing
	var category, obligation, plotOwned string
	var price, area, bedrooms, isDeveloped, totalPrice, taxValue sql.NullInt64
	var latitude, longitude sql.NullFloat64
	var isNew int
	var firstSeen, lastSeen string

	err := row.Scan(
		&listing.ID, &listing.MunicipalityCode, &category, &listing.Title,
		&price, &listing.PriceText, &listing.Address, &area, &bedrooms,
		&listing.PropertyType, &listing.ImageURL, &listing.FinnURL,
		&latitude, &longitude, &listing.SharedCost, &listing.SharedDebt,
		&isDeveloped, &obligation, &listing.BuildingObligationText,
		&plotOwned, &totalPrice, &taxValue, &listing.Cadastre,
		&listing.Facilities, &listing.Regulations, &listing.Utilities,
		&listing.YearlyCostsText, &listing.ContentHash, &isNew, &firstSeen, &lastSeen)
	if err != nil {
		return nil, err
	}

	listing.Category = tomtejakt.Category(category)
	listing.BuildingObligation = tomtejakt.Obligation(obligation)
	listing.PlotOwned = tomtejakt.Ownership(plotOwned)
	listing.Price = intPtr(price)
	listing.Area = intPtr(area)
	listing.Bedrooms = intPtr(bedrooms)
	listing.IsDeveloped = intPtr(isDeveloped)
	listing.TotalPrice = intPtr(totalPrice)
	listing.TaxValue = intPtr(taxValue)
	listing.Latitude = floatPtr(latitude)
	listing.Longitude = floatPtr(longitude)
	listing.IsNew = isNew != 0

	listing.FirstSeen, err = parseRFC3339(firstSeen, "first_seen")
	if err != nil {
		return nil, err
	}
	listing.LastSeen, err = parseRFC3339(lastSeen, "last_seen")
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

// contentHash fingerprints the mutable listing fields so downstream
// consumers can cheaply detect changes between sightings.
func contentHash(l *tomtejakt.Listing) string {
	h := xxhash.New()
	fields := []string{
		l.Title, l.PriceText, l.Address, l.PropertyType, l.ImageURL,
		string(l.BuildingObligation), l.BuildingObligationText,
		string(l.PlotOwned), l.Cadastre, l.Facilities, l.Regulations,
		l.Utilities, l.YearlyCostsText,
		strconv.Itoa(l.SharedCost), strconv.Itoa(l.SharedDebt),
	}
	for _, ptr := range []*int{l.Price, l.Area, l.Bedrooms, l.IsDeveloped, l.TotalPrice, l.TaxValue} {
		if ptr != nil {
			fields = append(fields, strconv.Itoa(*ptr))
		} else {
			fields = append(fields, "-")
		}
	}
	h.WriteString(strings.Join(fields, "\x1f"))
	return strconv.FormatUint(h.Sum64(), 16)
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
