package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crackthechain/internal/domain/model"
)

// StatsRepository holds the read-only aggregation queries. Every call
// re-scans the underlying tables; nothing is cached or maintained
// incrementally.
type StatsRepository interface {
	TopResearchers(ctx context.Context, page, limit int) ([]model.LeaderboardEntry, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type pgStatsRepository struct {
	db *sql.DB
}

func NewPgStatsRepository(db *sql.DB) StatsRepository {
	return &pgStatsRepository{db: db}
}

func (r *pgStatsRepository) TopResearchers(ctx context.Context, page, limit int) ([]model.LeaderboardEntry, error) {
	offset := (page - 1) * limit
	query := `SELECT u.id, u.first_name, u.last_name, u.profile_photo,
	              COUNT(r.id) AS accepted_reports,
	              COALESCE(SUM(r.points), 0) AS bounties_earned
	          FROM users u
	          LEFT JOIN project_reports r
	              ON r.user_id = u.id AND r.is_accepted = TRUE AND r.is_draft = FALSE AND r.is_deleted = FALSE
	          WHERE u.login_type = $1 AND u.is_deleted = FALSE
	          GROUP BY u.id, u.first_name, u.last_name, u.profile_photo
	          ORDER BY bounties_earned DESC, accepted_reports DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, model.LoginTypeResearcher, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.TopResearchers: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID, &entry.FirstName, &entry.LastName, &entry.ProfilePhoto,
			&entry.AcceptedReports, &entry.BountiesEarned,
		); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.TopResearchers scan: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.TopResearchers rows: %w", err)
	}
	return entries, nil
}

func (r *pgStatsRepository) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	projectQuery := `SELECT
	        COUNT(*) FILTER (WHERE is_project AND is_published),
	        COUNT(*) FILTER (WHERE is_project AND NOT is_published),
	        COUNT(*) FILTER (WHERE NOT is_project AND is_published),
	        COUNT(*) FILTER (WHERE NOT is_project AND NOT is_published)
	    FROM projects WHERE is_deleted = FALSE`
	if err := r.db.QueryRowContext(ctx, projectQuery).Scan(
		&stats.PublishedProjects, &stats.UnpublishedProjects,
		&stats.PublishedPrograms, &stats.UnpublishedPrograms,
	); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.Dashboard projects: %w", err)
	}

	userQuery := `SELECT
	        COUNT(*) FILTER (WHERE login_type = 'researcher'),
	        COUNT(*) FILTER (WHERE login_type = 'company'),
	        COUNT(*) FILTER (WHERE login_type = 'admin')
	    FROM users WHERE is_deleted = FALSE`
	if err := r.db.QueryRowContext(ctx, userQuery).Scan(
		&stats.Researchers, &stats.Companies, &stats.Admins,
	); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.Dashboard users: %w", err)
	}

	reportQuery := `SELECT
	        COUNT(*) FILTER (WHERE is_draft),
	        COUNT(*) FILTER (WHERE NOT is_draft),
	        COUNT(*) FILTER (WHERE is_accepted)
	    FROM project_reports WHERE is_deleted = FALSE`
	if err := r.db.QueryRowContext(ctx, reportQuery).Scan(
		&stats.DraftReports, &stats.PublishedReports, &stats.AcceptedReports,
	); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.Dashboard reports: %w", err)
	}

	return stats, nil
}
