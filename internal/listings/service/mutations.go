package service

import (
	"context"
	"fmt"

	"ms-directory/internal/kafka"
	"ms-directory/internal/listings/db"
	"ms-directory/internal/listings/forms"
	"ms-directory/internal/models"
	"ms-directory/internal/utils"
)

// ---------------- VENUES ----------------

// CreateVenue validates the form, rejects a natural-key duplicate and inserts
// the venue in one transaction. The unique constraint covers concurrent
// submissions that both pass the lookup.
func (s *ListingService) CreateVenue(ctx context.Context, form forms.VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	venue := form.Venue()
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		exists, err := tx.VenueExists(ctx, venue, 0)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicate
		}
		return tx.CreateVenue(ctx, venue)
	})
	if err = s.mutationError("create venue", err); err != nil {
		return nil, err
	}

	s.Logger.LogListing("CREATE", kafka.KindVenue, venue.ID, venue.Name)
	s.publish(ctx, kafka.KindVenue, kafka.ActionCreated, venue.ID, venue.Name)
	return venue, nil
}

// UpdateVenue replaces every field of an existing venue.
func (s *ListingService) UpdateVenue(ctx context.Context, id int64, form forms.VenueForm) (*models.Venue, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var venue *models.Venue
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		var err error
		venue, err = tx.GetVenue(ctx, id)
		if err != nil {
			return err
		}
		form.Apply(venue)

		exists, err := tx.VenueExists(ctx, venue, id)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicate
		}
		return tx.UpdateVenue(ctx, venue)
	})
	if err = s.mutationError("update venue", err); err != nil {
		return nil, err
	}

	s.Logger.LogListing("UPDATE", kafka.KindVenue, venue.ID, venue.Name)
	s.publish(ctx, kafka.KindVenue, kafka.ActionUpdated, venue.ID, venue.Name)
	return venue, nil
}

// DeleteVenue removes the venue and every show held there.
func (s *ListingService) DeleteVenue(ctx context.Context, id int64) error {
	var removed int64
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		if _, err := tx.GetVenue(ctx, id); err != nil {
			return err
		}
		var err error
		if removed, err = tx.DeleteShowsByVenue(ctx, id); err != nil {
			return err
		}
		return tx.DeleteVenue(ctx, id)
	})
	if err = s.mutationError("delete venue", err); err != nil {
		return err
	}

	s.Logger.LogListing("DELETE", kafka.KindVenue, id, fmt.Sprintf("removed with %d shows", removed))
	s.publish(ctx, kafka.KindVenue, kafka.ActionDeleted, id, "")
	return nil
}

// ---------------- ARTISTS ----------------

func (s *ListingService) CreateArtist(ctx context.Context, form forms.ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	artist := form.Artist()
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		exists, err := tx.ArtistExists(ctx, artist, 0)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicate
		}
		return tx.CreateArtist(ctx, artist)
	})
	if err = s.mutationError("create artist", err); err != nil {
		return nil, err
	}

	s.Logger.LogListing("CREATE", kafka.KindArtist, artist.ID, artist.Name)
	s.publish(ctx, kafka.KindArtist, kafka.ActionCreated, artist.ID, artist.Name)
	return artist, nil
}

func (s *ListingService) UpdateArtist(ctx context.Context, id int64, form forms.ArtistForm) (*models.Artist, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var artist *models.Artist
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		var err error
		artist, err = tx.GetArtist(ctx, id)
		if err != nil {
			return err
		}
		form.Apply(artist)

		exists, err := tx.ArtistExists(ctx, artist, id)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicate
		}
		return tx.UpdateArtist(ctx, artist)
	})
	if err = s.mutationError("update artist", err); err != nil {
		return nil, err
	}

	s.Logger.LogListing("UPDATE", kafka.KindArtist, artist.ID, artist.Name)
	s.publish(ctx, kafka.KindArtist, kafka.ActionUpdated, artist.ID, artist.Name)
	return artist, nil
}

// DeleteArtist removes the artist and every show they were booked for.
func (s *ListingService) DeleteArtist(ctx context.Context, id int64) error {
	var removed int64
	err := s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		if _, err := tx.GetArtist(ctx, id); err != nil {
			return err
		}
		var err error
		if removed, err = tx.DeleteShowsByArtist(ctx, id); err != nil {
			return err
		}
		return tx.DeleteArtist(ctx, id)
	})
	if err = s.mutationError("delete artist", err); err != nil {
		return err
	}

	s.Logger.LogListing("DELETE", kafka.KindArtist, id, fmt.Sprintf("removed with %d shows", removed))
	s.publish(ctx, kafka.KindArtist, kafka.ActionDeleted, id, "")
	return nil
}

// ---------------- SHOWS ----------------

// CreateShow books an artist at a venue. Unknown artist or venue ids are
// reported as field errors.
func (s *ListingService) CreateShow(ctx context.Context, form forms.ShowForm) (*models.Show, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	show, err := form.Show()
	if err != nil {
		return nil, err
	}

	err = s.DB.RunInTx(ctx, func(ctx context.Context, tx *db.DB) error {
		ve := &models.ValidationError{}
		ok, err := tx.ArtistIDExists(ctx, show.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add("artist_id", fmt.Sprintf("No artist with id %d.", show.ArtistID))
		}
		ok, err = tx.VenueIDExists(ctx, show.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add("venue_id", fmt.Sprintf("No venue with id %d.", show.VenueID))
		}
		if err := ve.OrNil(); err != nil {
			return err
		}

		exists, err := tx.ShowExists(ctx, show)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicate
		}
		return tx.CreateShow(ctx, show)
	})
	if err = s.mutationError("create show", err); err != nil {
		return nil, err
	}

	s.Logger.LogListing("CREATE", kafka.KindShow, show.ID, utils.FormatShowTime(show.StartTime))
	s.publish(ctx, kafka.KindShow, kafka.ActionCreated, show.ID, "")
	return show, nil
}
