package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/service"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) service.AuditRepository {
	return &AuditRepository{db: db}
}

// Create сохраняет запись журнала действий
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor, action, target, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Actor,
		entry.Action,
		entry.Target,
		entry.Outcome,
		entry.Detail,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// List возвращает страницу журнала и общее число записей
func (r *AuditRepository) List(ctx context.Context, page, pageSize int) ([]*models.AuditEntry, int, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := `
		SELECT id, actor, action, target, outcome, detail, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.AuditEntry, 0)
	for rows.Next() {
		entry := &models.AuditEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.Action,
			&entry.Target,
			&entry.Outcome,
			&entry.Detail,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error list iteration: %w", err)
	}
	return entries, total, nil
}
