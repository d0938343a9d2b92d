package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"ms-directory/internal/models"

	"github.com/uptrace/bun"
)

// DB wraps the bun handle. Inside RunInTx every query goes through the
// transaction instead.
type DB struct {
	Bun *bun.DB
	tx  bun.IDB
}

func (d *DB) conn() bun.IDB {
	if d.tx != nil {
		return d.tx
	}
	return d.Bun
}

// RunInTx runs fn in one transaction. It commits when fn returns nil and rolls
// back otherwise, releasing the connection on every path.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *DB) error) error {
	if d.tx != nil {
		return fn(ctx, d)
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &DB{Bun: d.Bun, tx: tx})
	})
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Bun.PingContext(ctx)
}

type upcomingCount struct {
	ID int64 `bun:"id"`
	N  int   `bun:"n"`
}

// upcomingCounts → shows per parent with start_time strictly after now
func (d *DB) upcomingCounts(ctx context.Context, column string, now time.Time) (map[int64]int, error) {
	var rows []upcomingCount
	err := d.conn().NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("? AS id", bun.Ident(column)).
		ColumnExpr("COUNT(*) AS n").
		Where("start_time > ?", now).
		GroupExpr("?", bun.Ident(column)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.N
	}
	return counts, nil
}

func (d *DB) VenueUpcomingCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	return d.upcomingCounts(ctx, "venue_id", now)
}

func (d *DB) ArtistUpcomingCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	return d.upcomingCounts(ctx, "artist_id", now)
}

// likePattern builds a case-insensitive substring pattern using '!' as the
// escape character.
func likePattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}

func deleted(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
