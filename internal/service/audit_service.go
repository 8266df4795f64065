package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-media-api/internal/model"
)

const (
	defaultUserLogLimit = 50
	defaultAllLogLimit  = 100
	maxLogLimit         = 500
)

type auditStore interface {
	Insert(ctx context.Context, record model.AuditRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.AuditRecord, error)
	ListAll(ctx context.Context, limit int) ([]model.AuditRecord, error)
}

// AuditService is the append-only trail of authentication attempts.
type AuditService struct {
	store auditStore
	now   func() time.Time
}

func NewAuditService(store auditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

func (s *AuditService) Record(ctx context.Context, userID *string, email string, action string, status string, details map[string]string) error {
	record := model.AuditRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserEmail: email,
		Action:    action,
		Status:    status,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", model.ErrAuditWriteFailed, err)
	}
	return nil
}

// ListByUser returns the user's records newest first. Unknown users yield an
// empty slice, not an error.
func (s *AuditService) ListByUser(ctx context.Context, userID string, limit int) ([]model.AuditRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, model.ErrInvalidInput
	}

	records, err := s.store.ListByUser(ctx, userID, clampLimit(limit, defaultUserLogLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return sortNewestFirst(records), nil
}

func (s *AuditService) ListAll(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	records, err := s.store.ListAll(ctx, clampLimit(limit, defaultAllLogLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return sortNewestFirst(records), nil
}

// sortNewestFirst pins the newest-first contract in the service, independent
// of store ordering.
func sortNewestFirst(records []model.AuditRecord) []model.AuditRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}

func clampLimit(limit int, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLogLimit {
		return maxLogLimit
	}
	return limit
}
