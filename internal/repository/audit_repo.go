package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-media-api/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, record model.AuditRecord) error {
	details := record.Details
	if details == nil {
		details = map[string]string{}
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, user_id, user_email, action, status, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.UserID, record.UserEmail, record.Action, record.Status,
		detailsJSON, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.AuditRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, user_email, action, status, details, created_at
		 FROM audit_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records by user: %w", err)
	}
	defer rows.Close()

	return scanAuditRecords(rows)
}

func (r *AuditRepository) ListAll(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, user_email, action, status, details, created_at
		 FROM audit_logs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	return scanAuditRecords(rows)
}

func scanAuditRecords(rows pgx.Rows) ([]model.AuditRecord, error) {
	records := make([]model.AuditRecord, 0)
	for rows.Next() {
		var rec model.AuditRecord
		var detailsJSON []byte

		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserEmail, &rec.Action,
			&rec.Status, &detailsJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}

		rec.Details = map[string]string{}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &rec.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
