package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
)

// ErrNotFound is returned by Get* methods when no row matches.
// Callers that need to distinguish absence from failure check for it
// with errors.Is.
var ErrNotFound = fmt.Errorf("not found")

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, number, description, delivery_date, material_cost, completed, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Number,
		p.Description,
		nullableTimeToString(p.DeliveryDate, dateLayout),
		p.MaterialCost.String(),
		boolToInt(p.Completed),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByNumber(ctx context.Context, number string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE UPPER(number) = UPPER(?)`
	return scanProject(r.db.QueryRowContext(ctx, query, number))
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET number = ?, description = ?, delivery_date = ?, material_cost = ?, completed = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Number,
		p.Description,
		nullableTimeToString(p.DeliveryDate, dateLayout),
		p.MaterialCost.String(),
		boolToInt(p.Completed),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var deliveryStr sql.NullString
	var costStr, createdAtStr, updatedAtStr string
	var completed int

	err := row.Scan(&p.ID, &p.Number, &p.Description, &deliveryStr, &costStr, &completed, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return buildProject(&p, deliveryStr, costStr, completed, createdAtStr, updatedAtStr)
}

func scanProjectFromRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var deliveryStr sql.NullString
	var costStr, createdAtStr, updatedAtStr string
	var completed int

	err := rows.Scan(&p.ID, &p.Number, &p.Description, &deliveryStr, &costStr, &completed, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return buildProject(&p, deliveryStr, costStr, completed, createdAtStr, updatedAtStr)
}

func buildProject(p *domain.Project, delivery sql.NullString, cost string, completed int, createdAt, updatedAt string) (*domain.Project, error) {
	var err error
	p.MaterialCost, err = parseDecimal(cost)
	if err != nil {
		return nil, fmt.Errorf("parsing material_cost: %w", err)
	}
	p.Completed = intToBool(completed)
	p.DeliveryDate = parseNullableTime(delivery, dateLayout)
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
