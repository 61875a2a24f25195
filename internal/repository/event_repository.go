package repository

import (
	"context"

	"gorm.io/gorm"

	"scheduler/internal/model"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, event *model.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns the events matching filter in store order.
func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := filter.Apply(r.db.WithContext(ctx)).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Update writes the event's dates.
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Model(event).
		Updates(map[string]interface{}{
			"start_date":  event.StartDate,
			"finish_date": event.FinishDate,
		}).Error
}

// Delete soft-deletes an event.
func (r *eventRepository) Delete(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Delete(event).Error
}
