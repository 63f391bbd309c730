package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/amqp"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/category"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
)

// CategoryService maintains the per-user category list document. Every
// mutation is a load, pure transform, full overwrite; renames and removals
// never touch historical expense records.
type CategoryService struct {
	categories storage.CategoryStore
	hub        *events.Hub
	publisher  *amqp.Client
}

func NewCategoryService(categories storage.CategoryStore, hub *events.Hub, publisher *amqp.Client) *CategoryService {
	return &CategoryService{categories: categories, hub: hub, publisher: publisher}
}

func (s *CategoryService) List(ctx context.Context, ownerID string) ([]string, error) {
	return s.categories.GetCategories(ctx, ownerID)
}

// Add appends a trimmed, de-duplicated category. Blank names and duplicates
// are accepted no-ops so repeated form submissions stay idempotent.
func (s *CategoryService) Add(ctx context.Context, ownerID, name string) ([]string, error) {
	names, err := s.categories.GetCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	next, changed := category.Add(names, name)
	if !changed {
		return names, nil
	}
	if err := s.categories.SetCategories(ctx, ownerID, next); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	s.notify(ctx, ownerID)
	return next, nil
}

func (s *CategoryService) Rename(ctx context.Context, ownerID, oldName, newName string) ([]string, error) {
	names, err := s.categories.GetCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	next, err := category.Rename(names, oldName, newName)
	if err != nil {
		return nil, err
	}
	if err := s.categories.SetCategories(ctx, ownerID, next); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	s.notify(ctx, ownerID)
	return next, nil
}

// Remove drops one category. Removing the last remaining entry is rejected
// with category.ErrLastCategory and leaves the list untouched.
func (s *CategoryService) Remove(ctx context.Context, ownerID, name string) ([]string, error) {
	names, err := s.categories.GetCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	next, err := category.Remove(names, name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.SetCategories(ctx, ownerID, next); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	s.notify(ctx, ownerID)
	return next, nil
}

func (s *CategoryService) notify(ctx context.Context, ownerID string) {
	ev := events.Event{OwnerID: ownerID, Kind: events.KindCategories, Op: "update", At: time.Now().UTC()}
	if s.hub != nil {
		s.hub.Publish(ev)
	}
	if err := s.publisher.PublishChange(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"error", err, "owner_id", ownerID, "kind", ev.Kind)
	}
}
