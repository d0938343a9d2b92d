package forms

import (
	"net/url"
	"testing"
	"time"

	"ms-directory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVenueValues() url.Values {
	return url.Values{
		"name":                {"  The Musical Hop "},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae", ""},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"image_link":          {""},
		"website_link":        {"https://www.themusicalhop.com"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

func validationFields(t *testing.T, err error) *models.ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*models.ValidationError)
	require.True(t, ok, "expected *models.ValidationError, got %T", err)
	return ve
}

func TestDecodeVenueForm(t *testing.T) {
	f := DecodeVenueForm(validVenueValues())

	assert.Equal(t, "The Musical Hop", f.Name)
	assert.Equal(t, []string{"Jazz", "Reggae"}, f.Genres)
	assert.True(t, f.SeekingTalent)
	assert.Empty(t, f.ImageLink)
	assert.NoError(t, f.Validate())

	v := f.Venue()
	assert.Equal(t, "1015 Folsom Street", v.Address)
	assert.Equal(t, "https://www.themusicalhop.com", v.WebsiteLink)
}

func TestCheckboxValues(t *testing.T) {
	for _, raw := range []string{"y", "on", "true", "TRUE"} {
		assert.True(t, checkbox(url.Values{"seeking_venue": {raw}}, "seeking_venue"), raw)
	}
	assert.False(t, checkbox(url.Values{}, "seeking_venue"))
	assert.False(t, checkbox(url.Values{"seeking_venue": {"n"}}, "seeking_venue"))
}

func TestVenueFormRejectsBadPhone(t *testing.T) {
	values := validVenueValues()
	values.Set("phone", "1234567")

	ve := validationFields(t, DecodeVenueForm(values).Validate())
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "phone", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "phone")
}

func TestVenueFormCollectsEveryFailure(t *testing.T) {
	values := url.Values{
		"state":         {"ZZ"},
		"phone":         {"nope"},
		"genres":        {"Jazz", "Polka", "Yodel"},
		"facebook_link": {"not a url"},
	}

	ve := validationFields(t, DecodeVenueForm(values).Validate())
	for _, f := range []string{"name", "city", "address", "state", "phone", "genres", "facebook_link"} {
		assert.True(t, ve.Has(f), "missing error for %s", f)
	}
	// Two bad genres still produce a single genres message.
	n := 0
	for _, fe := range ve.Fields {
		if fe.Field == "genres" {
			n++
		}
	}
	assert.Equal(t, 1, n)
	assert.Len(t, ve.Messages(), len(ve.Fields))
}

func TestArtistFormRequiresGenres(t *testing.T) {
	f := DecodeArtistForm(url.Values{
		"name":  {"Guns N Petals"},
		"city":  {"San Francisco"},
		"state": {"CA"},
		"phone": {"326-123-5000"},
	})

	ve := validationFields(t, f.Validate())
	assert.True(t, ve.Has("genres"))
	assert.False(t, ve.Has("name"))
}

func TestArtistFormRoundTrip(t *testing.T) {
	stored := &models.Artist{
		ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
		Genres: []string{"Rock n Roll"}, SeekingVenue: true, SeekingDescription: "Looking for shows",
	}

	f := ArtistFormFrom(stored)
	require.NoError(t, f.Validate())

	f.City = "Oakland"
	f.SeekingVenue = false
	f.Apply(stored)

	assert.Equal(t, int64(4), stored.ID)
	assert.Equal(t, "Oakland", stored.City)
	assert.False(t, stored.SeekingVenue)
	assert.Equal(t, []string{"Rock n Roll"}, stored.Genres)
}

func TestVenueFormFromPrefills(t *testing.T) {
	v := &models.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street", Phone: "914-003-1132", Genres: []string{"Classical"}}
	f := VenueFormFrom(v)
	assert.Equal(t, "335 Delancey Street", f.Address)
	assert.NoError(t, f.Validate())
}

func TestShowForm(t *testing.T) {
	f := DecodeShowForm(url.Values{
		"artist_id":  {"4"},
		"venue_id":   {" 1 "},
		"start_time": {"2035-04-01 20:00:00"},
	})
	require.NoError(t, f.Validate())

	show, err := f.Show()
	require.NoError(t, err)
	assert.Equal(t, int64(4), show.ArtistID)
	assert.Equal(t, int64(1), show.VenueID)
	assert.Equal(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC), show.StartTime)
}

func TestShowFormRejectsBadInput(t *testing.T) {
	f := DecodeShowForm(url.Values{
		"artist_id":  {"four"},
		"start_time": {"next tuesday"},
	})

	ve := validationFields(t, f.Validate())
	assert.True(t, ve.Has("artist_id"))
	assert.True(t, ve.Has("venue_id"))
	assert.True(t, ve.Has("start_time"))
}

func TestParseStartTimeLayouts(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T22:00:00+02:00", "2035-04-01 20:00"} {
		got, err := ParseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseStartTime("")
	assert.Error(t, err)
}
