package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-directory/internal/database"
	"ms-directory/internal/kafka"
	"ms-directory/internal/listings/db"
	"ms-directory/internal/logger"
	"ms-directory/internal/models"
)

// Publisher receives listing events after a mutation commits.
type Publisher interface {
	PublishListing(ctx context.Context, ev kafka.ListingEvent) error
}

// Publishers sends every event to each publisher in turn and joins failures.
type Publishers []Publisher

func (ps Publishers) PublishListing(ctx context.Context, ev kafka.ListingEvent) error {
	var errs []error
	for _, p := range ps {
		if err := p.PublishListing(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type ListingService struct {
	DB        *db.DB
	Publisher Publisher
	Logger    *logger.Logger
	// Now is the clock used to split shows into past and upcoming.
	Now func() time.Time
}

func NewListingService(d *db.DB, pub Publisher, log *logger.Logger) *ListingService {
	if pub == nil {
		pub = kafka.NopPublisher{}
	}
	return &ListingService{
		DB:        d,
		Publisher: pub,
		Logger:    log,
		Now:       time.Now,
	}
}

func (s *ListingService) now() time.Time {
	return models.NormalizeShowTime(s.Now())
}

// Ping reports whether the storage client is reachable.
func (s *ListingService) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

// mutationError maps a failure inside a write to the listing error taxonomy.
// Storage failures are logged here with their cause and returned wrapped.
func (s *ListingService) mutationError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrDuplicate), models.IsValidation(err):
		return err
	case database.IsUniqueViolation(err):
		return models.ErrDuplicate
	default:
		s.Logger.Error("LISTING", fmt.Sprintf("%s failed, rolled back: %v", op, err))
		return &models.PersistenceError{Op: op, Err: err}
	}
}

func (s *ListingService) queryError(op string, err error) error {
	if err == nil || errors.Is(err, models.ErrNotFound) {
		return err
	}
	s.Logger.Error("LISTING", fmt.Sprintf("%s failed: %v", op, err))
	return &models.PersistenceError{Op: op, Err: err}
}

// publish runs after commit. A broker failure never undoes the write.
func (s *ListingService) publish(ctx context.Context, kind, action string, id int64, name string) {
	ev := kafka.ListingEvent{Kind: kind, Action: action, ID: id, Name: name, OccurredAt: s.Now().UTC()}
	if err := s.Publisher.PublishListing(ctx, ev); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish %s %s event for %d: %v", kind, action, id, err))
	}
}
