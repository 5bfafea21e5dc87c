package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pizocrm/internal/models"
)

const promotersSchema = `
CREATE TABLE IF NOT EXISTS promoters (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	code       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type PromoterRepository struct {
	db *sql.DB
}

func NewPromoterRepository(db *sql.DB) *PromoterRepository {
	return &PromoterRepository{db: db}
}

func (r *PromoterRepository) Create(ctx context.Context, p *models.Promoter) (string, error) {
	const q = `
		INSERT INTO promoters (id, name, code, email, phone, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, q, id, p.Name, p.Code, p.Email, p.Phone, p.Active, p.CreatedAt); err != nil {
		return "", fmt.Errorf("create promoter: %w", err)
	}
	return id, nil
}

func (r *PromoterRepository) GetByID(ctx context.Context, id string) (*models.Promoter, error) {
	const q = `
		SELECT id, name, code, email, phone, active, created_at
		FROM promoters
		WHERE id=$1
	`
	var p models.Promoter
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Code, &p.Email, &p.Phone, &p.Active, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get promoter: %w", err)
	}
	return &p, nil
}

func (r *PromoterRepository) List(ctx context.Context) ([]models.Promoter, error) {
	const q = `
		SELECT id, name, code, email, phone, active, created_at
		FROM promoters
		ORDER BY name, id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list promoters: %w", err)
	}
	defer rows.Close()

	out := []models.Promoter{}
	for rows.Next() {
		var p models.Promoter
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Email, &p.Phone, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan promoter: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PromoterRepository) SetActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE promoters SET active=$1 WHERE id=$2`
	if _, err := r.db.ExecContext(ctx, q, active, id); err != nil {
		return fmt.Errorf("set promoter active: %w", err)
	}
	return nil
}
