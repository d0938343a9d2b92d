package main

import (
	"context"
	"testing"
	"time"

	"ms-directory/internal/database/dbtest"
	"ms-directory/internal/kafka"
	listing_db "ms-directory/internal/listings/db"
	"ms-directory/internal/listings/service"
	"ms-directory/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedListsSampleData(t *testing.T) {
	ctx := context.Background()
	svc := service.NewListingService(&listing_db.DB{Bun: dbtest.New(t)}, kafka.NopPublisher{}, logger.Discard())
	svc.Now = func() time.Time { return time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC) }

	res, err := seed(ctx, svc, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, seedResult{Venues: 3, Artists: 3, Shows: 5}, res)

	detail, err := svc.VenueDetail(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 3, detail.UpcomingShowsCount)
}

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	svc := service.NewListingService(&listing_db.DB{Bun: dbtest.New(t)}, kafka.NopPublisher{}, logger.Discard())

	_, err := seed(ctx, svc, logger.Discard())
	require.NoError(t, err)

	res, err := seed(ctx, svc, logger.Discard())
	require.NoError(t, err)
	assert.Zero(t, res.Venues+res.Artists+res.Shows)
	assert.Equal(t, len(sampleVenues)+len(sampleArtists)+len(sampleShows), res.Skipped)

	n, err := svc.DB.CountShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sampleShows), n)
}
