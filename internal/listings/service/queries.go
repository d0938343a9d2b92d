package service

import (
	"context"
	"fmt"

	"ms-directory/internal/models"
	"ms-directory/internal/utils"
)

// ListVenuesGrouped buckets venues by (city, state) with per-venue upcoming
// show counts.
func (s *ListingService) ListVenuesGrouped(ctx context.Context) ([]models.VenueGroup, error) {
	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, s.queryError("list venues", err)
	}
	counts, err := s.DB.VenueUpcomingCounts(ctx, s.now())
	if err != nil {
		return nil, s.queryError("count upcoming shows", err)
	}

	groups := []models.VenueGroup{}
	index := make(map[[2]string]int)
	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.VenueGroup{City: v.City, State: v.State})
		}
		groups[i].Venues = append(groups[i].Venues, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return groups, nil
}

func (s *ListingService) ListArtists(ctx context.Context) ([]models.ArtistSummary, error) {
	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, s.queryError("list artists", err)
	}
	out := make([]models.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, models.ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// Search dispatches on the listing kind ("venues" or "artists").
func (s *ListingService) Search(ctx context.Context, kind, term string) (*models.SearchResult, error) {
	switch kind {
	case "venues":
		return s.SearchVenues(ctx, term)
	case "artists":
		return s.SearchArtists(ctx, term)
	default:
		return nil, fmt.Errorf("unknown listing kind %q", kind)
	}
}

// SearchVenues matches term case-insensitively anywhere in the name. An empty
// term matches every venue.
func (s *ListingService) SearchVenues(ctx context.Context, term string) (*models.SearchResult, error) {
	venues, err := s.DB.SearchVenues(ctx, term)
	if err != nil {
		return nil, s.queryError("search venues", err)
	}
	counts, err := s.DB.VenueUpcomingCounts(ctx, s.now())
	if err != nil {
		return nil, s.queryError("count upcoming shows", err)
	}

	res := &models.SearchResult{Data: make([]models.SearchSummary, 0, len(venues))}
	for _, v := range venues {
		res.Data = append(res.Data, models.SearchSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

func (s *ListingService) SearchArtists(ctx context.Context, term string) (*models.SearchResult, error) {
	artists, err := s.DB.SearchArtists(ctx, term)
	if err != nil {
		return nil, s.queryError("search artists", err)
	}
	counts, err := s.DB.ArtistUpcomingCounts(ctx, s.now())
	if err != nil {
		return nil, s.queryError("count upcoming shows", err)
	}

	res := &models.SearchResult{Data: make([]models.SearchSummary, 0, len(artists))}
	for _, a := range artists {
		res.Data = append(res.Data, models.SearchSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	res.Count = len(res.Data)
	return res, nil
}

func (s *ListingService) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	v, err := s.DB.GetVenue(ctx, id)
	return v, s.queryError("get venue", err)
}

func (s *ListingService) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	a, err := s.DB.GetArtist(ctx, id)
	return a, s.queryError("get artist", err)
}

// isPast compares the formatted start time with the formatted clock. Shows
// at the current second count as upcoming.
func isPast(start, now string) bool {
	return start < now
}

func (s *ListingService) VenueDetail(ctx context.Context, id int64) (*models.VenueDetail, error) {
	venue, err := s.DB.GetVenue(ctx, id)
	if err != nil {
		return nil, s.queryError("get venue", err)
	}
	shows, err := s.DB.ShowsForVenue(ctx, id)
	if err != nil {
		return nil, s.queryError("list venue shows", err)
	}

	detail := &models.VenueDetail{
		Venue:         *venue,
		PastShows:     []models.ShowEntry{},
		UpcomingShows: []models.ShowEntry{},
	}
	now := utils.FormatShowTime(s.now())
	for _, show := range shows {
		entry := models.ShowEntry{
			CounterpartID: show.ArtistID,
			StartTime:     utils.FormatShowTime(show.StartTime),
		}
		if show.Artist != nil {
			entry.CounterpartName = show.Artist.Name
			entry.CounterpartImageLink = show.Artist.ImageLink
		}
		if isPast(entry.StartTime, now) {
			detail.PastShows = append(detail.PastShows, entry)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (s *ListingService) ArtistDetail(ctx context.Context, id int64) (*models.ArtistDetail, error) {
	artist, err := s.DB.GetArtist(ctx, id)
	if err != nil {
		return nil, s.queryError("get artist", err)
	}
	shows, err := s.DB.ShowsForArtist(ctx, id)
	if err != nil {
		return nil, s.queryError("list artist shows", err)
	}

	detail := &models.ArtistDetail{
		Artist:        *artist,
		PastShows:     []models.ShowEntry{},
		UpcomingShows: []models.ShowEntry{},
	}
	now := utils.FormatShowTime(s.now())
	for _, show := range shows {
		entry := models.ShowEntry{
			CounterpartID: show.VenueID,
			StartTime:     utils.FormatShowTime(show.StartTime),
		}
		if show.Venue != nil {
			entry.CounterpartName = show.Venue.Name
			entry.CounterpartImageLink = show.Venue.ImageLink
		}
		if isPast(entry.StartTime, now) {
			detail.PastShows = append(detail.PastShows, entry)
		} else {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// ListShowsChronological returns every show, earliest first.
func (s *ListingService) ListShowsChronological(ctx context.Context) ([]models.ShowListing, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, s.queryError("list shows", err)
	}

	out := make([]models.ShowListing, 0, len(shows))
	for _, show := range shows {
		row := models.ShowListing{
			ID:        show.ID,
			VenueID:   show.VenueID,
			ArtistID:  show.ArtistID,
			StartTime: utils.FormatShowTime(show.StartTime),
		}
		if show.Venue != nil {
			row.VenueName = show.Venue.Name
		}
		if show.Artist != nil {
			row.ArtistName = show.Artist.Name
			row.ArtistImageLink = show.Artist.ImageLink
		}
		out = append(out, row)
	}
	return out, nil
}
