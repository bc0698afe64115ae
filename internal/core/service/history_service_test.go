package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

type stubHistoryRepo struct {
	records   []domain.HistoryRecord
	findCalls int
	insertErr error
}

func (r *stubHistoryRepo) Insert(_ context.Context, record *domain.HistoryRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *stubHistoryRepo) FindByUser(_ context.Context, userID string, limit int) ([]domain.HistoryRecord, error) {
	r.findCalls++
	out := make([]domain.HistoryRecord, 0, limit)
	// Newest first.
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type stubHistoryCache struct {
	entries     map[string][]domain.HistoryRecord
	invalidated []string
}

func newStubHistoryCache() *stubHistoryCache {
	return &stubHistoryCache{entries: make(map[string][]domain.HistoryRecord)}
}

func (c *stubHistoryCache) Get(_ context.Context, userID string) ([]domain.HistoryRecord, error) {
	return c.entries[userID], nil
}

func (c *stubHistoryCache) Set(_ context.Context, userID string, records []domain.HistoryRecord) error {
	c.entries[userID] = records
	return nil
}

func (c *stubHistoryCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func record(userID, command string) domain.HistoryRecord {
	return domain.HistoryRecord{
		UserID:    userID,
		Command:   command,
		Response:  "ok",
		CreatedAt: time.Now().UTC(),
	}
}

func TestHistoryService_RecordInvalidatesCache(t *testing.T) {
	repo := &stubHistoryRepo{}
	cache := newStubHistoryCache()
	cache.entries["user-1"] = []domain.HistoryRecord{record("user-1", "stale")}
	svc := NewHistoryService(repo, cache, zerolog.Nop())

	if err := svc.Record(context.Background(), record("user-1", "new")); err != nil {
		t.Fatalf("record returned error: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(repo.records))
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "user-1" {
		t.Fatalf("expected cache invalidation for user-1, got %v", cache.invalidated)
	}
}

func TestHistoryService_Record_InsertError(t *testing.T) {
	wantErr := errors.New("store down")
	repo := &stubHistoryRepo{insertErr: wantErr}
	cache := newStubHistoryCache()
	svc := NewHistoryService(repo, cache, zerolog.Nop())

	if err := svc.Record(context.Background(), record("user-1", "cmd")); !errors.Is(err, wantErr) {
		t.Fatalf("expected insert error to propagate, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Fatalf("cache must not be touched on a failed insert")
	}
}

func TestHistoryService_Recent_CacheMissThenHit(t *testing.T) {
	repo := &stubHistoryRepo{}
	cache := newStubHistoryCache()
	svc := NewHistoryService(repo, cache, zerolog.Nop())

	for _, cmd := range []string{"one", "two", "three"} {
		if err := svc.Record(context.Background(), record("user-1", cmd)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	first, err := svc.Recent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("recent returned error: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 records, got %d", len(first))
	}
	if first[0].Command != "three" {
		t.Fatalf("expected newest first, got %q", first[0].Command)
	}
	if repo.findCalls != 1 {
		t.Fatalf("expected one store read, got %d", repo.findCalls)
	}

	// Second read is served from cache.
	second, err := svc.Recent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("recent (cached) returned error: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("expected 3 cached records, got %d", len(second))
	}
	if repo.findCalls != 1 {
		t.Fatalf("cache hit must not read the store again, got %d calls", repo.findCalls)
	}
}

func TestHistoryService_Recent_LimitsToTen(t *testing.T) {
	repo := &stubHistoryRepo{}
	cache := newStubHistoryCache()
	svc := NewHistoryService(repo, cache, zerolog.Nop())

	for i := 0; i < 15; i++ {
		if err := svc.Record(context.Background(), record("user-1", "cmd")); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	records, err := svc.Recent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("recent returned error: %v", err)
	}
	if len(records) != recentLimit {
		t.Fatalf("expected %d records, got %d", recentLimit, len(records))
	}
}
