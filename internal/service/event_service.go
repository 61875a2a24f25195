package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"scheduler/internal/cache"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/model"
	"scheduler/internal/repository"
)

// EventService handles event operations. Ownership is checked by the
// HTTP middleware before UpdateEvent and DeleteEvent are reached.
type EventService interface {
	ListEvents(ctx context.Context, filter repository.EventFilter) ([]model.Event, error)
	CreateEvent(ctx context.Context, ownerID string, startDate, finishDate *string) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event, startDate, finishDate *string) (*model.Event, error)
	DeleteEvent(ctx context.Context, event *model.Event) (*model.Event, error)
}

type eventService struct {
	repo     repository.EventRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository, userRepo repository.UserRepository, cache *cache.Client) EventService {
	return &eventService{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func eventCacheKey(id string) string {
	return "event:" + id
}

// ListEvents returns the events matching filter.
func (s *eventService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// CreateEvent stores a new event owned by ownerID.
func (s *eventService) CreateEvent(ctx context.Context, ownerID string, startDate, finishDate *string) (*model.Event, error) {
	dates, err := ValidateDateRange(startDate, finishDate)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: owner %s does not exist", apperrors.ErrSomethingWentWrong, ownerID)
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	event := &model.Event{
		UserID:     owner.ID,
		StartDate:  dates.Start,
		FinishDate: dates.Finish,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event by ID with caching.
func (s *eventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if !model.IsValidID(id) {
		return nil, fmt.Errorf("%w: malformed event id %q", apperrors.ErrSomethingWentWrong, id)
	}

	var cached model.Event
	if s.cache.GetJSON(ctx, eventCacheKey(id), &cached) {
		return &cached, nil
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "Event", ID: id}
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	s.cache.SetJSON(ctx, eventCacheKey(id), event)
	return event, nil
}

// UpdateEvent replaces the dates of an existing event.
func (s *eventService) UpdateEvent(ctx context.Context, event *model.Event, startDate, finishDate *string) (*model.Event, error) {
	dates, err := ValidateDateRange(startDate, finishDate)
	if err != nil {
		return nil, err
	}

	event.StartDate = dates.Start
	event.FinishDate = dates.Finish
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.cache.Delete(ctx, eventCacheKey(event.ID))
	return event, nil
}

// DeleteEvent removes an event and returns it as it was before deletion.
func (s *eventService) DeleteEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := s.repo.Delete(ctx, event); err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.cache.Delete(ctx, eventCacheKey(event.ID))
	return event, nil
}
