package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
)

type AuthCodeRepository interface {
	FindByCode(ctx context.Context, code string) (*model.AuthCode, error)
}

type pgAuthCodeRepository struct {
	db *sql.DB
}

func NewPgAuthCodeRepository(db *sql.DB) AuthCodeRepository {
	return &pgAuthCodeRepository{db: db}
}

func (r *pgAuthCodeRepository) FindByCode(ctx context.Context, code string) (*model.AuthCode, error) {
	query := `SELECT id, auth_code, created_at, updated_at FROM auth_codes WHERE auth_code = $1`
	authCode := &model.AuthCode{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&authCode.ID, &authCode.AuthCode, &authCode.CreatedAt, &authCode.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAuthCodeRepository.FindByCode: %w", err)
	}
	return authCode, nil
}
