package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
)

type ProjectSectionRepository interface {
	Create(ctx context.Context, section *model.ProjectSection) error
	FindByID(ctx context.Context, id string) (*model.ProjectSection, error)
	Update(ctx context.Context, section *model.ProjectSection) error
	ListByProject(ctx context.Context, projectID string, page, limit int) ([]model.ProjectSection, int, error)
	ListAllByProject(ctx context.Context, projectID string) ([]model.ProjectSection, error)
	ListAssetsByProject(ctx context.Context, projectID string, page, limit int) ([]model.ProjectSection, int, error)
	// CountActive counts the non-deleted sections of a project; a new
	// section's rank is this count + 1.
	CountActive(ctx context.Context, projectID string) (int, error)
	// ClearAssetFlags unmarks every asset section of a project in one
	// best-effort bulk update.
	ClearAssetFlags(ctx context.Context, projectID string) error
	// FindAdjacent returns the non-deleted section of the same project with
	// the closest rank strictly below (direction "up") or above (direction
	// "down") the given rank, or ErrNotFound at a boundary.
	FindAdjacent(ctx context.Context, projectID string, rank int, direction string) (*model.ProjectSection, error)
}

type pgProjectSectionRepository struct {
	db *sql.DB
}

func NewPgProjectSectionRepository(db *sql.DB) ProjectSectionRepository {
	return &pgProjectSectionRepository{db: db}
}

const sectionColumns = `id, section_title, section_type, section_text, section_list, is_asset, rank,
	project_id, is_deleted, deleted_at, created_at, updated_at`

func scanSection(row interface{ Scan(...interface{}) error }) (*model.ProjectSection, error) {
	section := &model.ProjectSection{}
	err := row.Scan(
		&section.ID, &section.SectionTitle, &section.SectionType, &section.SectionText,
		&section.SectionList, &section.IsAsset, &section.Rank, &section.ProjectID,
		&section.IsDeleted, &section.DeletedAt, &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (r *pgProjectSectionRepository) Create(ctx context.Context, section *model.ProjectSection) error {
	query := `INSERT INTO project_sections (id, section_title, section_type, section_text, section_list,
	              is_asset, rank, project_id, is_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		section.ID, section.SectionTitle, section.SectionType, section.SectionText,
		section.SectionList, section.IsAsset, section.Rank, section.ProjectID,
		section.IsDeleted, section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectSectionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectSectionRepository) FindByID(ctx context.Context, id string) (*model.ProjectSection, error) {
	query := `SELECT ` + sectionColumns + ` FROM project_sections WHERE id = $1`
	section, err := scanSection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectSectionRepository.FindByID: %w", err)
	}
	return section, nil
}

func (r *pgProjectSectionRepository) Update(ctx context.Context, section *model.ProjectSection) error {
	query := `UPDATE project_sections SET section_title = $2, section_type = $3, section_text = $4,
	              section_list = $5, is_asset = $6, rank = $7, project_id = $8, is_deleted = $9,
	              deleted_at = $10, updated_at = $11
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		section.ID, section.SectionTitle, section.SectionType, section.SectionText,
		section.SectionList, section.IsAsset, section.Rank, section.ProjectID,
		section.IsDeleted, section.DeletedAt, section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectSectionRepository.Update: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProjectSectionRepository) ListByProject(ctx context.Context, projectID string, page, limit int) ([]model.ProjectSection, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + sectionColumns + ` FROM project_sections
	          WHERE project_id = $1
	          ORDER BY rank ASC
	          LIMIT $2 OFFSET $3`
	sections, err := r.querySections(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectSectionRepository.ListByProject: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_sections WHERE project_id = $1`, projectID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectSectionRepository.ListByProject count: %w", err)
	}
	return sections, total, nil
}

func (r *pgProjectSectionRepository) ListAllByProject(ctx context.Context, projectID string) ([]model.ProjectSection, error) {
	query := `SELECT ` + sectionColumns + ` FROM project_sections
	          WHERE project_id = $1
	          ORDER BY rank ASC`
	sections, err := r.querySections(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("pgProjectSectionRepository.ListAllByProject: %w", err)
	}
	return sections, nil
}

func (r *pgProjectSectionRepository) ListAssetsByProject(ctx context.Context, projectID string, page, limit int) ([]model.ProjectSection, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + sectionColumns + ` FROM project_sections
	          WHERE project_id = $1 AND is_asset = TRUE AND is_deleted = FALSE
	          ORDER BY rank ASC
	          LIMIT $2 OFFSET $3`
	sections, err := r.querySections(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectSectionRepository.ListAssetsByProject: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_sections WHERE project_id = $1 AND is_asset = TRUE AND is_deleted = FALSE`,
		projectID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectSectionRepository.ListAssetsByProject count: %w", err)
	}
	return sections, total, nil
}

func (r *pgProjectSectionRepository) querySections(ctx context.Context, query string, args ...interface{}) ([]model.ProjectSection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []model.ProjectSection{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *section)
	}
	return sections, rows.Err()
}

func (r *pgProjectSectionRepository) CountActive(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_sections WHERE project_id = $1 AND is_deleted = FALSE`,
		projectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgProjectSectionRepository.CountActive: %w", err)
	}
	return count, nil
}

func (r *pgProjectSectionRepository) ClearAssetFlags(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE project_sections SET is_asset = FALSE WHERE project_id = $1 AND is_asset = TRUE`,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("pgProjectSectionRepository.ClearAssetFlags: %w", err)
	}
	return nil
}

func (r *pgProjectSectionRepository) FindAdjacent(ctx context.Context, projectID string, rank int, direction string) (*model.ProjectSection, error) {
	var query string
	if direction == model.RankDirectionUp {
		query = `SELECT ` + sectionColumns + ` FROM project_sections
		         WHERE project_id = $1 AND rank < $2 AND is_deleted = FALSE
		         ORDER BY rank DESC LIMIT 1`
	} else {
		query = `SELECT ` + sectionColumns + ` FROM project_sections
		         WHERE project_id = $1 AND rank > $2 AND is_deleted = FALSE
		         ORDER BY rank ASC LIMIT 1`
	}
	section, err := scanSection(r.db.QueryRowContext(ctx, query, projectID, rank))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectSectionRepository.FindAdjacent: %w", err)
	}
	return section, nil
}
