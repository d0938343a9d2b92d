package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ShowTimeLayout is the text form used to display and compare show times.
const ShowTimeLayout = "2006-01-02 15:04:05"

type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ArtistID  int64     `bun:"artist_id,notnull,unique:shows_natural_key" json:"artist_id"`
	VenueID   int64     `bun:"venue_id,notnull,unique:shows_natural_key" json:"venue_id"`
	StartTime time.Time `bun:"start_time,notnull,unique:shows_natural_key" json:"start_time"`

	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
}

// NormalizeShowTime stores times as whole seconds in UTC so every driver
// compares them the same way.
func NormalizeShowTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func (s *Show) NaturalKey() map[string]interface{} {
	return map[string]interface{}{
		"artist_id":  s.ArtistID,
		"venue_id":   s.VenueID,
		"start_time": NormalizeShowTime(s.StartTime),
	}
}

// VenueGroup is one (city, state) bucket of the venue listing.
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is shared by venue and artist search.
type SearchResult struct {
	Count int             `json:"count"`
	Data  []SearchSummary `json:"data"`
}

type SearchSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ShowEntry is a show as seen from a detail page. Counterpart fields hold the
// artist for a venue page and the venue for an artist page.
type ShowEntry struct {
	CounterpartID        int64  `json:"counterpart_id"`
	CounterpartName      string `json:"counterpart_name"`
	CounterpartImageLink string `json:"counterpart_image_link"`
	StartTime            string `json:"start_time"`
}

type VenueDetail struct {
	Venue
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ShowListing is one row of the chronological show list.
type ShowListing struct {
	ID              int64  `json:"id"`
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
