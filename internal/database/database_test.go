package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ms-directory/internal/config"
	"ms-directory/internal/database"
	"ms-directory/internal/database/dbtest"
	"ms-directory/internal/logger"
	"ms-directory/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver:         "sqlite",
		DSN:            "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		ConnectRetries: 2,
		RetryDelay:     time.Millisecond,
	}

	db, err := database.Open(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.CreateSchema(ctx, db))
	// Idempotent.
	require.NoError(t, database.CreateSchema(ctx, db))
	assert.Equal(t, 1, db.DB.Stats().MaxOpenConnections)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"}, logger.Discard())
	assert.Error(t, err)
}

func TestUniqueConstraintOnVenueNaturalKey(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	venue := func() *models.Venue {
		return &models.Venue{
			Name: "The Musical Hop", City: "San Francisco", State: "CA",
			Address: "1015 Folsom Street", Phone: "123-123-1234", Genres: []string{"Jazz"},
		}
	}

	_, err := db.NewInsert().Model(venue()).Exec(ctx)
	require.NoError(t, err)

	_, err = db.NewInsert().Model(venue()).Exec(ctx)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	other := venue()
	other.Phone = "123-123-9999"
	_, err = db.NewInsert().Model(other).Exec(ctx)
	assert.NoError(t, err)
}

func TestGenresRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	a := &models.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000", Genres: []string{"Rock n Roll", "R&B"}}
	_, err := db.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)
	require.NotZero(t, a.ID)

	var got models.Artist
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", a.ID).Scan(ctx))
	assert.Equal(t, []string{"Rock n Roll", "R&B"}, got.Genres)
	assert.Empty(t, got.FacebookLink)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("disk full")))
	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, database.IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.True(t, database.IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: shows.artist_id (2067)")))
}
