// Package draft owns the in-progress booking fields. The working copy is
// editable from any screen; the pending copy is the durable continuation
// written when the user proceeds to payment, and is the only thing that
// survives the redirect to the card processor.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doit/models"
	"doit/utils"

	"go.uber.org/zap"
)

// Service is the booking draft store.
type Service struct {
	Store  utils.KV
	Logger *zap.Logger
}

func workingKey(scope string) string { return utils.WorkingDraftPrefix + scope }
func pendingKey(scope string) string { return utils.PendingDraftPrefix + scope }

// Get returns the working draft, or an empty draft when none exists.
func (s *Service) Get(ctx context.Context, scope string) (models.BookingDraft, error) {
	data, err := s.Store.Get(ctx, workingKey(scope))
	if errors.Is(err, utils.ErrKeyNotFound) {
		return models.BookingDraft{}, nil
	}
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("load draft: %w", err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return models.BookingDraft{}, fmt.Errorf("parse draft: %w", err)
	}
	return d, nil
}

func (s *Service) save(ctx context.Context, key string, d models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.Store.Set(ctx, key, string(data), utils.DraftTTL)
}

// update applies a field mutation to the working draft.
func (s *Service) update(ctx context.Context, scope string, apply func(*models.BookingDraft)) error {
	d, err := s.Get(ctx, scope)
	if err != nil {
		return err
	}
	apply(&d)
	return s.save(ctx, workingKey(scope), d)
}

func (s *Service) SetService(ctx context.Context, scope, service string) error {
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.SelectedService = service })
}

func (s *Service) SetPrice(ctx context.Context, scope string, price models.Money) error {
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.Price = price })
}

func (s *Service) SetDate(ctx context.Context, scope, date string) error {
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.Date = date })
}

func (s *Service) SetTimeSlot(ctx context.Context, scope, slot string) error {
	if slot != "" && !utils.IsValidTimeSlot(slot) {
		return fmt.Errorf("unknown time slot %q", slot)
	}
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.TimeSlot = slot })
}

func (s *Service) SetAddress(ctx context.Context, scope, address string) error {
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.Address = address })
}

func (s *Service) SetDetails(ctx context.Context, scope, details string) error {
	return s.update(ctx, scope, func(d *models.BookingDraft) { d.Details = details })
}

// Stage serializes the whole working draft into the pending slot. This is
// the one-way hand-off toward payment; completeness is checked downstream
// at finalization, not here.
func (s *Service) Stage(ctx context.Context, scope string) (models.BookingDraft, error) {
	d, err := s.Get(ctx, scope)
	if err != nil {
		return models.BookingDraft{}, err
	}
	if err := s.save(ctx, pendingKey(scope), d); err != nil {
		return models.BookingDraft{}, err
	}
	s.Logger.Debug("draft staged for payment", zap.String("scope", scope))
	return d, nil
}

// Pending returns the durable pending draft. The second result is false
// when no pending draft exists.
func (s *Service) Pending(ctx context.Context, scope string) (models.BookingDraft, bool, error) {
	data, err := s.Store.Get(ctx, pendingKey(scope))
	if errors.Is(err, utils.ErrKeyNotFound) {
		return models.BookingDraft{}, false, nil
	}
	if err != nil {
		return models.BookingDraft{}, false, fmt.Errorf("load pending draft: %w", err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return models.BookingDraft{}, false, fmt.Errorf("parse pending draft: %w", err)
	}
	return d, true, nil
}

// CheckPendingBooking resets the working fields when no pending draft
// exists. This is the recovery path after a booking is finalized or
// abandoned; it stops stale values leaking into the next attempt.
func (s *Service) CheckPendingBooking(ctx context.Context, scope string) error {
	_, ok, err := s.Pending(ctx, scope)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.Store.Del(ctx, workingKey(scope))
}

// Clear deletes both copies of the draft. Called exactly once, when the
// backend confirms the booking was created.
func (s *Service) Clear(ctx context.Context, scope string) error {
	if err := s.Store.Del(ctx, pendingKey(scope)); err != nil {
		return err
	}
	if err := s.Store.Del(ctx, workingKey(scope)); err != nil {
		return err
	}
	s.Logger.Debug("draft cleared", zap.String("scope", scope))
	return nil
}
