package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-media-api/internal/model"
)

type fakeAuditStore struct {
	records   []model.AuditRecord
	lastLimit int
	err       error
}

func (f *fakeAuditStore) Insert(_ context.Context, record model.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditStore) ListByUser(_ context.Context, userID string, limit int) ([]model.AuditRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit

	out := make([]model.AuditRecord, 0)
	for _, r := range f.records {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAuditStore) ListAll(_ context.Context, limit int) ([]model.AuditRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit = limit
	return f.records, nil
}

func TestAuditService_Record(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	userID := "user-1"
	err := svc.Record(context.Background(), &userID, "a@x.com", model.ActionLogin, model.StatusSuccess,
		map[string]string{model.DetailClientIP: "10.0.0.1"})

	require.NoError(t, err)
	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, &userID, rec.UserID)
	assert.Equal(t, "a@x.com", rec.UserEmail)
	assert.Equal(t, at, rec.CreatedAt)

	t.Run("store error wraps as audit write failed", func(t *testing.T) {
		broken := &fakeAuditStore{err: errors.New("disk full")}
		err := NewAuditService(broken).Record(context.Background(), nil, "a@x.com", model.ActionLogin, model.StatusFailure, nil)
		assert.ErrorIs(t, err, model.ErrAuditWriteFailed)
	})
}

func TestAuditService_ListByUser(t *testing.T) {
	userID := "user-1"
	otherID := "user-2"
	store := &fakeAuditStore{records: []model.AuditRecord{
		{ID: "1", UserID: &userID},
		{ID: "2", UserID: &otherID},
		{ID: "3", UserID: &userID},
	}}
	svc := NewAuditService(store)

	t.Run("returns only the requested user's records", func(t *testing.T) {
		records, err := svc.ListByUser(context.Background(), userID, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, r := range records {
			assert.Equal(t, userID, *r.UserID)
		}
		assert.Equal(t, 50, store.lastLimit)
	})

	t.Run("user with no records yields an empty slice", func(t *testing.T) {
		records, err := svc.ListByUser(context.Background(), "00000000-0000-0000-0000-000000000000", 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty user id is invalid", func(t *testing.T) {
		_, err := svc.ListByUser(context.Background(), "  ", 0)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("limit is capped", func(t *testing.T) {
		_, err := svc.ListByUser(context.Background(), userID, 9999)
		require.NoError(t, err)
		assert.Equal(t, 500, store.lastLimit)
	})
}

func TestAuditService_OrdersNewestFirst(t *testing.T) {
	userID := "user-1"
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Store hands records back oldest-first and out of order; the service
	// still returns them newest-first.
	store := &fakeAuditStore{records: []model.AuditRecord{
		{ID: "old", UserID: &userID, CreatedAt: base},
		{ID: "newest", UserID: &userID, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "middle", UserID: &userID, CreatedAt: base.Add(time.Minute)},
	}}
	svc := NewAuditService(store)

	t.Run("ListAll", func(t *testing.T) {
		records, err := svc.ListAll(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "newest", records[0].ID)
		assert.Equal(t, "middle", records[1].ID)
		assert.Equal(t, "old", records[2].ID)
	})

	t.Run("ListByUser", func(t *testing.T) {
		records, err := svc.ListByUser(context.Background(), userID, 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "newest", records[0].ID)
		assert.Equal(t, "old", records[2].ID)
	})
}

func TestAuditService_ListAll(t *testing.T) {
	store := &fakeAuditStore{records: []model.AuditRecord{{ID: "1"}, {ID: "2"}}}
	svc := NewAuditService(store)

	records, err := svc.ListAll(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 100, store.lastLimit)

	t.Run("store outage surfaces as store unavailable", func(t *testing.T) {
		broken := &fakeAuditStore{err: errors.New("connection refused")}
		_, err := NewAuditService(broken).ListAll(context.Background(), 0)
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}
