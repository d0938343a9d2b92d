package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"ms-directory/internal/config"
	"ms-directory/internal/database"
	"ms-directory/internal/kafka"
	listing_db "ms-directory/internal/listings/db"
	"ms-directory/internal/listings/forms"
	"ms-directory/internal/listings/service"
	"ms-directory/internal/logger"
	"ms-directory/internal/models"
	"ms-directory/internal/utils"

	"github.com/joho/godotenv"
)

// ---------------- Sample data ----------------

var sampleVenues = []forms.VenueForm{
	{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		Genres:             []string{"Jazz", "Reggae", "Blues", "Classical", "Folk"},
		WebsiteLink:        "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
	},
	{
		Name:         "The Dueling Pianos Bar",
		City:         "New York",
		State:        "NY",
		Address:      "335 Delancey Street",
		Phone:        "914-003-1132",
		Genres:       []string{"Classical", "R&B", "Hip-Hop"},
		WebsiteLink:  "https://www.theduelingpianos.com",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750",
	},
	{
		Name:         "Park Square Live Music & Coffee",
		City:         "San Francisco",
		State:        "CA",
		Address:      "34 Whiskey Moore Ave",
		Phone:        "415-000-1234",
		Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		WebsiteLink:  "https://www.parksquarelivemusicandcoffee.com",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747",
	},
}

var sampleArtists = []forms.ArtistForm{
	{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             []string{"Rock n Roll"},
		WebsiteLink:        "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
	},
	{
		Name:         "Matt Quevedo",
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		Genres:       []string{"Jazz"},
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
	},
	{
		Name:      "The Wild Sax Band",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		Genres:    []string{"Jazz", "Classical"},
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
	},
}

// sampleShow pairs list positions with an offset from the seeding time, so a
// fresh seed always has both past and upcoming shows.
type sampleShow struct {
	Venue  int
	Artist int
	Offset time.Duration
}

var sampleShows = []sampleShow{
	{Venue: 0, Artist: 0, Offset: -30 * 24 * time.Hour},
	{Venue: 2, Artist: 1, Offset: -7 * 24 * time.Hour},
	{Venue: 2, Artist: 2, Offset: 14 * 24 * time.Hour},
	{Venue: 2, Artist: 2, Offset: 21 * 24 * time.Hour},
	{Venue: 2, Artist: 2, Offset: 28 * 24 * time.Hour},
}

// ---------------- Seeding ----------------

type seedResult struct {
	Venues, Artists, Shows, Skipped int
}

// seed lists the sample data through the service. Entries that already exist
// are skipped along with the shows that depend on them.
func seed(ctx context.Context, svc *service.ListingService, log *logger.Logger) (seedResult, error) {
	var res seedResult
	now := svc.Now()

	venueIDs := make([]int64, len(sampleVenues))
	for i, form := range sampleVenues {
		venue, err := svc.CreateVenue(ctx, form)
		if errors.Is(err, models.ErrDuplicate) {
			log.Warn("SEED", fmt.Sprintf("Venue %s already listed, skipping", form.Name))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("venue %s: %w", form.Name, err)
		}
		venueIDs[i] = venue.ID
		res.Venues++
	}

	artistIDs := make([]int64, len(sampleArtists))
	for i, form := range sampleArtists {
		artist, err := svc.CreateArtist(ctx, form)
		if errors.Is(err, models.ErrDuplicate) {
			log.Warn("SEED", fmt.Sprintf("Artist %s already listed, skipping", form.Name))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("artist %s: %w", form.Name, err)
		}
		artistIDs[i] = artist.ID
		res.Artists++
	}

	for _, s := range sampleShows {
		venueID, artistID := venueIDs[s.Venue], artistIDs[s.Artist]
		if venueID == 0 || artistID == 0 {
			res.Skipped++
			continue
		}
		_, err := svc.CreateShow(ctx, forms.ShowForm{
			ArtistID:  strconv.FormatInt(artistID, 10),
			VenueID:   strconv.FormatInt(venueID, 10),
			StartTime: utils.FormatShowTime(now.Add(s.Offset)),
		})
		if errors.Is(err, models.ErrDuplicate) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("show at venue %d: %w", venueID, err)
		}
		res.Shows++
	}

	return res, nil
}

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the listing tables before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, ".env file not found, using environment variables")
	}

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	if err := cfg.Validate(); err != nil {
		log.Fatal("CONFIG", err.Error())
	}

	ctx := context.Background()
	bunDB, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	if *reset {
		log.Info("SEED", "Dropping tables...")
		if err := database.DropSchema(ctx, bunDB); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Drop failed: %v", err))
		}
	}

	log.Info("SEED", "Creating tables...")
	if err := database.CreateSchema(ctx, bunDB); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Schema bootstrap failed: %v", err))
	}

	// Seeding does not announce listings on the event stream.
	svc := service.NewListingService(&listing_db.DB{Bun: bunDB}, kafka.NopPublisher{}, log)

	log.Info("SEED", "Seeding sample data...")
	res, err := seed(ctx, svc, log)
	if err != nil {
		log.Fatal("SEED", err.Error())
	}
	log.Info("SEED", fmt.Sprintf("✅ Done. %d venues, %d artists, %d shows listed (%d skipped)", res.Venues, res.Artists, res.Shows, res.Skipped))
}
