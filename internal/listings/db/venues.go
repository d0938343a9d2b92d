package db

import (
	"context"

	"ms-directory/internal/models"
)

// ---------------- VENUES ----------------

// ListVenues → every venue ordered for grouping by state and city
func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.conn().NewSelect().
		Model(&venues).
		OrderExpr("v.state ASC, v.city ASC, v.id ASC").
		Scan(ctx)
	return venues, err
}

// SearchVenues → case-insensitive substring match on name
func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.conn().NewSelect().
		Model(&venues).
		Where("LOWER(v.name) LIKE ? ESCAPE '!'", likePattern(term)).
		OrderExpr("v.id ASC").
		Scan(ctx)
	return venues, err
}

func (d *DB) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.conn().NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return &venue, nil
}

// VenueExists → natural-key lookup, ignoring the row with excludeID
func (d *DB) VenueExists(ctx context.Context, v *models.Venue, excludeID int64) (bool, error) {
	q := d.conn().NewSelect().
		Model((*models.Venue)(nil)).
		Where("v.name = ?", v.Name).
		Where("v.city = ?", v.City).
		Where("v.state = ?", v.State).
		Where("v.address = ?", v.Address).
		Where("v.phone = ?", v.Phone)
	if excludeID > 0 {
		q = q.Where("v.id <> ?", excludeID)
	}
	return q.Exists(ctx)
}

func (d *DB) CreateVenue(ctx context.Context, v *models.Venue) error {
	_, err := d.conn().NewInsert().Model(v).Exec(ctx)
	return err
}

// UpdateVenue → overwrite every column except the id
func (d *DB) UpdateVenue(ctx context.Context, v *models.Venue) error {
	_, err := d.conn().NewUpdate().
		Model(v).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	return err
}

func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return deleted(d.conn().NewDelete().
		Model((*models.Venue)(nil)).
		Where("id = ?", id).
		Exec(ctx))
}

func (d *DB) DeleteShowsByVenue(ctx context.Context, venueID int64) (int64, error) {
	res, err := d.conn().NewDelete().
		Model((*models.Show)(nil)).
		Where("venue_id = ?", venueID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) CountVenues(ctx context.Context) (int, error) {
	return d.conn().NewSelect().Model((*models.Venue)(nil)).Count(ctx)
}
