package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
)

type ProjectReportRepository interface {
	Create(ctx context.Context, report *model.ProjectReport) error
	FindByID(ctx context.Context, id string) (*model.ProjectReport, error)
	Update(ctx context.Context, report *model.ProjectReport) error
	// ListPublishedByProject returns the non-draft, non-deleted reports of a
	// project, newest first, with the reporter's display name joined in.
	ListPublishedByProject(ctx context.Context, projectID string, page, limit int) ([]model.ReportWithUser, int, error)
	// ListByUser returns every report of a user, newest first, with the
	// project name joined in.
	ListByUser(ctx context.Context, userID string, page, limit int) ([]model.ReportWithProject, int, error)
}

type pgProjectReportRepository struct {
	db *sql.DB
}

func NewPgProjectReportRepository(db *sql.DB) ProjectReportRepository {
	return &pgProjectReportRepository{db: db}
}

const reportColumns = `id, user_id, project_id, selected_asset, is_draft, severity, report_title,
	report_description, points, is_accepted, status, is_deleted, deleted_at, created_at, updated_at`

func scanReport(row interface{ Scan(...interface{}) error }, extra ...interface{}) (*model.ProjectReport, error) {
	report := &model.ProjectReport{}
	dest := []interface{}{
		&report.ID, &report.UserID, &report.ProjectID, &report.SelectedAsset, &report.IsDraft,
		&report.Severity, &report.ReportTitle, &report.ReportDescription, &report.Points,
		&report.IsAccepted, &report.Status, &report.IsDeleted, &report.DeletedAt,
		&report.CreatedAt, &report.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *pgProjectReportRepository) Create(ctx context.Context, report *model.ProjectReport) error {
	query := `INSERT INTO project_reports (id, user_id, project_id, selected_asset, is_draft, severity,
	              report_title, report_description, points, is_accepted, status, is_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.UserID, report.ProjectID, report.SelectedAsset, report.IsDraft,
		report.Severity, report.ReportTitle, report.ReportDescription, report.Points,
		report.IsAccepted, report.Status, report.IsDeleted, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectReportRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectReportRepository) FindByID(ctx context.Context, id string) (*model.ProjectReport, error) {
	query := `SELECT ` + reportColumns + ` FROM project_reports WHERE id = $1`
	report, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectReportRepository.FindByID: %w", err)
	}
	return report, nil
}

func (r *pgProjectReportRepository) Update(ctx context.Context, report *model.ProjectReport) error {
	query := `UPDATE project_reports SET user_id = $2, project_id = $3, selected_asset = $4, is_draft = $5,
	              severity = $6, report_title = $7, report_description = $8, points = $9, is_accepted = $10,
	              status = $11, is_deleted = $12, deleted_at = $13, updated_at = $14
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		report.ID, report.UserID, report.ProjectID, report.SelectedAsset, report.IsDraft,
		report.Severity, report.ReportTitle, report.ReportDescription, report.Points,
		report.IsAccepted, report.Status, report.IsDeleted, report.DeletedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectReportRepository.Update: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProjectReportRepository) ListPublishedByProject(ctx context.Context, projectID string, page, limit int) ([]model.ReportWithUser, int, error) {
	offset := (page - 1) * limit
	query := `SELECT r.id, r.user_id, r.project_id, r.selected_asset, r.is_draft, r.severity, r.report_title,
	              r.report_description, r.points, r.is_accepted, r.status, r.is_deleted, r.deleted_at,
	              r.created_at, r.updated_at, u.first_name, u.last_name
	          FROM project_reports r
	          JOIN users u ON u.id = r.user_id
	          WHERE r.project_id = $1 AND r.is_draft = FALSE AND r.is_deleted = FALSE
	          ORDER BY r.created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListPublishedByProject: %w", err)
	}
	defer rows.Close()

	reports := []model.ReportWithUser{}
	for rows.Next() {
		var firstName, lastName string
		report, err := scanReport(rows, &firstName, &lastName)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProjectReportRepository.ListPublishedByProject scan: %w", err)
		}
		reports = append(reports, model.ReportWithUser{
			ProjectReport: *report,
			UserFirstName: firstName,
			UserLastName:  lastName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListPublishedByProject rows: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_reports WHERE project_id = $1 AND is_draft = FALSE AND is_deleted = FALSE`,
		projectID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListPublishedByProject count: %w", err)
	}
	return reports, total, nil
}

func (r *pgProjectReportRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]model.ReportWithProject, int, error) {
	offset := (page - 1) * limit
	query := `SELECT r.id, r.user_id, r.project_id, r.selected_asset, r.is_draft, r.severity, r.report_title,
	              r.report_description, r.points, r.is_accepted, r.status, r.is_deleted, r.deleted_at,
	              r.created_at, r.updated_at, p.project_name
	          FROM project_reports r
	          JOIN projects p ON p.id = r.project_id
	          WHERE r.user_id = $1
	          ORDER BY r.created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	reports := []model.ReportWithProject{}
	for rows.Next() {
		var projectName string
		report, err := scanReport(rows, &projectName)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProjectReportRepository.ListByUser scan: %w", err)
		}
		reports = append(reports, model.ReportWithProject{
			ProjectReport: *report,
			ProjectName:   projectName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListByUser rows: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_reports WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProjectReportRepository.ListByUser count: %w", err)
	}
	return reports, total, nil
}
