package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"gothere/internal/modules/progress/domain"
	progressout "gothere/internal/modules/progress/port/out"
	"gothere/internal/platform/logger"
)

// ProgressService moves State in and out of the blob store. Storage
// problems never fail a call: reads fall back to the default state and
// failed writes leave the session running in memory.
type ProgressService struct {
	store progressout.BlobStore
	notes progressout.SavedNoteWriter
	log   *logger.Logger

	degraded atomic.Bool
}

func NewProgressService(store progressout.BlobStore, notes progressout.SavedNoteWriter, log *logger.Logger) *ProgressService {
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressService{store: store, notes: notes, log: log}
}

func (s *ProgressService) Load(ctx context.Context) domain.State {
	if s.store == nil {
		s.degraded.Store(true)
		return domain.DefaultState()
	}
	raw, ok, err := s.store.Get(ctx, domain.StorageKey)
	if err != nil {
		s.log.Warn("progress storage unavailable, starting fresh", "key", domain.StorageKey, "error", err)
		s.degraded.Store(true)
		return domain.DefaultState()
	}
	if !ok {
		return domain.DefaultState()
	}
	state, err := domain.Decode(raw)
	if err != nil {
		s.log.Warn("recovered progress with defaults", "key", domain.StorageKey, "error", err)
	}
	return state
}

// Persist writes state and reports whether it reached storage.
func (s *ProgressService) Persist(ctx context.Context, state domain.State) bool {
	if s.store == nil {
		return false
	}
	raw, err := domain.Encode(state)
	if err != nil {
		s.log.Error("encode progress", "error", err)
		s.degraded.Store(true)
		return false
	}
	if err := s.store.Set(ctx, domain.StorageKey, raw); err != nil {
		s.log.Warn("progress not persisted, keeping it in memory", "key", domain.StorageKey, "bytes", len(raw), "error", err)
		s.degraded.Store(true)
		return false
	}
	s.degraded.Store(false)
	return true
}

// LoadSwipeCount reads the lifetime swipe counter. A missing or unreadable
// counter starts at 0.
func (s *ProgressService) LoadSwipeCount(ctx context.Context) int {
	if s.store == nil {
		return 0
	}
	raw, ok, err := s.store.Get(ctx, domain.SwipeCountKey)
	if err != nil {
		s.log.Debug("swipe counter unavailable", "key", domain.SwipeCountKey, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	return domain.DecodeSwipeCount(raw)
}

// PersistSwipeCount stores the counter. It is cosmetic, so a failed write is
// logged and does not mark the session degraded.
func (s *ProgressService) PersistSwipeCount(ctx context.Context, n int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, domain.SwipeCountKey, domain.EncodeSwipeCount(n)); err != nil {
		s.log.Debug("swipe counter not persisted", "key", domain.SwipeCountKey, "error", err)
	}
}

// Degraded reports whether the last read or write of the state failed.
func (s *ProgressService) Degraded() bool {
	return s.degraded.Load()
}

func (s *ProgressService) WriteSavedNote(ctx context.Context, path string, note domain.SavedNote) (string, error) {
	if s.notes == nil {
		return "", fmt.Errorf("saved note writer is not configured")
	}
	out, err := s.notes.WriteSavedNote(ctx, path, note)
	if err != nil {
		return "", err
	}
	s.log.Info("saved questions exported", "path", out, "count", note.Count)
	return out, nil
}
