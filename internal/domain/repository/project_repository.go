package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	// List returns projects or programs of the given kind regardless of
	// publish/delete state, each with its count of non-deleted reports.
	List(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, int, error)
	// ListPublished returns published, non-deleted projects with their count
	// of published (non-draft), non-deleted reports.
	ListPublished(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, error)
	ListPublishedOptions(ctx context.Context) ([]model.ProjectOption, error)
}

type pgProjectRepository struct {
	db *sql.DB
}

func NewPgProjectRepository(db *sql.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

const projectColumns = `id, project_name, slug, company_id, project_description, min_price, max_price,
	start_date, end_date, start_time, end_time, service_type, is_project, is_published, max_points,
	is_deleted, deleted_at, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }, extra ...interface{}) (*model.Project, error) {
	project := &model.Project{}
	dest := []interface{}{
		&project.ID, &project.ProjectName, &project.Slug, &project.CompanyID, &project.ProjectDescription,
		&project.MinPrice, &project.MaxPrice, &project.StartDate, &project.EndDate,
		&project.StartTime, &project.EndTime, &project.ServiceType, &project.IsProject,
		&project.IsPublished, &project.MaxPoints, &project.IsDeleted, &project.DeletedAt,
		&project.CreatedAt, &project.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *pgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `INSERT INTO projects (id, project_name, slug, company_id, project_description, min_price, max_price,
	              start_date, end_date, start_time, end_time, service_type, is_project, is_published, max_points,
	              is_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.ProjectName, project.Slug, project.CompanyID, project.ProjectDescription,
		project.MinPrice, project.MaxPrice, project.StartDate, project.EndDate,
		project.StartTime, project.EndTime, project.ServiceType, project.IsProject,
		project.IsPublished, project.MaxPoints, project.IsDeleted,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectRepository.FindByID: %w", err)
	}
	return project, nil
}

func (r *pgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	query := `UPDATE projects SET project_name = $2, slug = $3, company_id = $4, project_description = $5,
	              min_price = $6, max_price = $7, start_date = $8, end_date = $9, start_time = $10,
	              end_time = $11, service_type = $12, is_project = $13, is_published = $14, max_points = $15,
	              is_deleted = $16, deleted_at = $17, updated_at = $18
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		project.ID, project.ProjectName, project.Slug, project.CompanyID, project.ProjectDescription,
		project.MinPrice, project.MaxPrice, project.StartDate, project.EndDate,
		project.StartTime, project.EndTime, project.ServiceType, project.IsProject,
		project.IsPublished, project.MaxPoints, project.IsDeleted, project.DeletedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Update: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProjectRepository) List(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + projectColumns + `,
	              (SELECT COUNT(*) FROM project_reports pr
	               WHERE pr.project_id = projects.id AND pr.is_deleted = FALSE) AS report_count
	          FROM projects
	          WHERE is_project = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, isProject, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectRepository.List: %w", err)
	}
	defer rows.Close()

	projects := []model.ProjectWithReportCount{}
	for rows.Next() {
		var reportCount int
		project, err := scanProject(rows, &reportCount)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProjectRepository.List scan: %w", err)
		}
		projects = append(projects, model.ProjectWithReportCount{Project: *project, ReportCount: reportCount})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProjectRepository.List rows: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE is_project = $1`, isProject,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectRepository.List count: %w", err)
	}
	return projects, total, nil
}

func (r *pgProjectRepository) ListPublished(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + projectColumns + `,
	              (SELECT COUNT(*) FROM project_reports pr
	               WHERE pr.project_id = projects.id AND pr.is_draft = FALSE AND pr.is_deleted = FALSE) AS report_count
	          FROM projects
	          WHERE is_project = $1 AND is_published = TRUE AND is_deleted = FALSE
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, isProject, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository.ListPublished: %w", err)
	}
	defer rows.Close()

	projects := []model.ProjectWithReportCount{}
	for rows.Next() {
		var reportCount int
		project, err := scanProject(rows, &reportCount)
		if err != nil {
			return nil, fmt.Errorf("pgProjectRepository.ListPublished scan: %w", err)
		}
		projects = append(projects, model.ProjectWithReportCount{Project: *project, ReportCount: reportCount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProjectRepository.ListPublished rows: %w", err)
	}
	return projects, nil
}

func (r *pgProjectRepository) ListPublishedOptions(ctx context.Context) ([]model.ProjectOption, error) {
	query := `SELECT id, project_name, slug FROM projects
	          WHERE is_published = TRUE AND is_deleted = FALSE
	          ORDER BY project_name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository.ListPublishedOptions: %w", err)
	}
	defer rows.Close()

	options := []model.ProjectOption{}
	for rows.Next() {
		var option model.ProjectOption
		if err := rows.Scan(&option.ID, &option.ProjectName, &option.Slug); err != nil {
			return nil, fmt.Errorf("pgProjectRepository.ListPublishedOptions scan: %w", err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProjectRepository.ListPublishedOptions rows: %w", err)
	}
	return options, nil
}
