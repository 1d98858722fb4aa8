package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Totenem/Time-Tracker-App/internal/common/db"
	"github.com/Totenem/Time-Tracker-App/internal/track/domain"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	FindByName(ctx context.Context, name string) (domain.Project, error)
}

type PgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

func (r *PgProjectRepository) FindByName(ctx context.Context, name string) (domain.Project, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name FROM projects WHERE name = $1`,
		name,
	)

	var project domain.Project
	err := row.Scan(&project.ID, &project.Name)
	if err != nil {
		return domain.Project{}, db.HandleQueryError(err, ErrProjectNotFound, "find project by name", start)
	}
	db.MeasureQueryDuration("find project by name", start)

	return project, nil
}
