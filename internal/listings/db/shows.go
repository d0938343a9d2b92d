package db

import (
	"context"

	"ms-directory/internal/models"

	"github.com/uptrace/bun"
)

// ---------------- SHOWS ----------------

// ListShows → every show with its venue and artist, earliest first
func (d *DB) ListShows(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	err := d.conn().NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}

// ShowsForVenue → a venue's shows with the performing artist attached
func (d *DB) ShowsForVenue(ctx context.Context, venueID int64) ([]models.Show, error) {
	var shows []models.Show
	err := d.conn().NewSelect().
		Model(&shows).
		Relation("Artist").
		Where("s.venue_id = ?", venueID).
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}

// ShowsForArtist → an artist's shows with the hosting venue attached
func (d *DB) ShowsForArtist(ctx context.Context, artistID int64) ([]models.Show, error) {
	var shows []models.Show
	err := d.conn().NewSelect().
		Model(&shows).
		Relation("Venue").
		Where("s.artist_id = ?", artistID).
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}

func (d *DB) ShowExists(ctx context.Context, s *models.Show) (bool, error) {
	return d.conn().NewSelect().
		Model((*models.Show)(nil)).
		Where("s.artist_id = ?", s.ArtistID).
		Where("s.venue_id = ?", s.VenueID).
		Where("s.start_time = ?", models.NormalizeShowTime(s.StartTime)).
		Exists(ctx)
}

func (d *DB) CreateShow(ctx context.Context, s *models.Show) error {
	s.StartTime = models.NormalizeShowTime(s.StartTime)
	_, err := d.conn().NewInsert().Model(s).Exec(ctx)
	return err
}

func (d *DB) CountShows(ctx context.Context) (int, error) {
	return d.conn().NewSelect().Model((*models.Show)(nil)).Count(ctx)
}

// idExists reports whether table has a row with the given id.
func (d *DB) idExists(ctx context.Context, table string, id int64) (bool, error) {
	return d.conn().NewSelect().
		TableExpr("?", bun.Ident(table)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) VenueIDExists(ctx context.Context, id int64) (bool, error) {
	return d.idExists(ctx, "venues", id)
}

func (d *DB) ArtistIDExists(ctx context.Context, id int64) (bool, error) {
	return d.idExists(ctx, "artists", id)
}
