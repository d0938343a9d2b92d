// Package forms decodes and validates the venue, artist and show forms and
// maps them onto stored models field by field.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"ms-directory/internal/models"
)

type VenueForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

type ArtistForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone" validate:"required,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,number"`
	VenueID   string `form:"venue_id" validate:"required,number"`
	StartTime string `form:"start_time" validate:"required,showtime"`
}

func DecodeVenueForm(values url.Values) VenueForm {
	return VenueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		Genres:             list(values, "genres"),
		FacebookLink:       field(values, "facebook_link"),
		ImageLink:          field(values, "image_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func DecodeArtistForm(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Phone:              field(values, "phone"),
		Genres:             list(values, "genres"),
		FacebookLink:       field(values, "facebook_link"),
		ImageLink:          field(values, "image_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func DecodeShowForm(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  field(values, "artist_id"),
		VenueID:   field(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
}

func (f VenueForm) Validate() error  { return check(f) }
func (f ArtistForm) Validate() error { return check(f) }
func (f ShowForm) Validate() error   { return check(f) }

// Apply overwrites every editable venue column with the form values.
func (f VenueForm) Apply(v *models.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = append([]string(nil), f.Genres...)
	v.FacebookLink = f.FacebookLink
	v.ImageLink = f.ImageLink
	v.WebsiteLink = f.WebsiteLink
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

func (f VenueForm) Venue() *models.Venue {
	v := &models.Venue{}
	f.Apply(v)
	return v
}

func (f ArtistForm) Apply(a *models.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = append([]string(nil), f.Genres...)
	a.FacebookLink = f.FacebookLink
	a.ImageLink = f.ImageLink
	a.WebsiteLink = f.WebsiteLink
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

func (f ArtistForm) Artist() *models.Artist {
	a := &models.Artist{}
	f.Apply(a)
	return a
}

// Show converts a validated form. Call Validate first.
func (f ShowForm) Show() (*models.Show, error) {
	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil {
		return nil, invalid("artist_id", "The artist id field must be a number.")
	}
	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil {
		return nil, invalid("venue_id", "The venue id field must be a number.")
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, invalid("start_time", "Not a valid datetime value in the start time field.")
	}
	return &models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// VenueFormFrom prefills the edit form from a stored venue.
func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             append([]string(nil), v.Genres...),
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             append([]string(nil), a.Genres...),
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func invalid(field, msg string) error {
	ve := &models.ValidationError{}
	ve.Add(field, msg)
	return ve
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func list(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func checkbox(values url.Values, key string) bool {
	switch strings.ToLower(field(values, key)) {
	case "y", "on", "true", "1":
		return true
	}
	return false
}
