package db

import (
	"context"

	"ms-directory/internal/models"
)

// ---------------- ARTISTS ----------------

func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	err := d.conn().NewSelect().
		Model(&artists).
		OrderExpr("a.id ASC").
		Scan(ctx)
	return artists, err
}

func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	err := d.conn().NewSelect().
		Model(&artists).
		Where("LOWER(a.name) LIKE ? ESCAPE '!'", likePattern(term)).
		OrderExpr("a.id ASC").
		Scan(ctx)
	return artists, err
}

func (d *DB) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.conn().NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return &artist, nil
}

func (d *DB) ArtistExists(ctx context.Context, a *models.Artist, excludeID int64) (bool, error) {
	q := d.conn().NewSelect().
		Model((*models.Artist)(nil)).
		Where("a.name = ?", a.Name).
		Where("a.city = ?", a.City).
		Where("a.state = ?", a.State).
		Where("a.phone = ?", a.Phone)
	if excludeID > 0 {
		q = q.Where("a.id <> ?", excludeID)
	}
	return q.Exists(ctx)
}

func (d *DB) CreateArtist(ctx context.Context, a *models.Artist) error {
	_, err := d.conn().NewInsert().Model(a).Exec(ctx)
	return err
}

func (d *DB) UpdateArtist(ctx context.Context, a *models.Artist) error {
	_, err := d.conn().NewUpdate().
		Model(a).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	return err
}

func (d *DB) DeleteArtist(ctx context.Context, id int64) error {
	return deleted(d.conn().NewDelete().
		Model((*models.Artist)(nil)).
		Where("id = ?", id).
		Exec(ctx))
}

func (d *DB) DeleteShowsByArtist(ctx context.Context, artistID int64) (int64, error) {
	res, err := d.conn().NewDelete().
		Model((*models.Show)(nil)).
		Where("artist_id = ?", artistID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) CountArtists(ctx context.Context) (int, error) {
	return d.conn().NewSelect().Model((*models.Artist)(nil)).Count(ctx)
}
