package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
)

// SQLiteAssemblyRepo implements AssemblyRepo using a SQLite database.
type SQLiteAssemblyRepo struct {
	db db.DBTX
}

// NewSQLiteAssemblyRepo creates a new SQLiteAssemblyRepo.
func NewSQLiteAssemblyRepo(conn db.DBTX) *SQLiteAssemblyRepo {
	return &SQLiteAssemblyRepo{db: conn}
}

const assemblyColumns = `id, project_id, number, description, price, delivery_date, completed_date, completed, created_at, updated_at`

func (r *SQLiteAssemblyRepo) Create(ctx context.Context, a *domain.Assembly) error {
	query := `INSERT INTO assemblies (` + assemblyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.Number,
		a.Description,
		a.Price.String(),
		nullableTimeToString(a.DeliveryDate, dateLayout),
		nullableTimeToString(a.CompletedDate, dateLayout),
		boolToInt(a.Completed),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assembly: %w", err)
	}
	return nil
}

func (r *SQLiteAssemblyRepo) GetByID(ctx context.Context, id string) (*domain.Assembly, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanAssembly(func(dest ...any) error { return row.Scan(dest...) })
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assembly: %w", ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAssemblyRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Assembly, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies WHERE project_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing assemblies: %w", err)
	}
	defer rows.Close()

	var assemblies []*domain.Assembly
	for rows.Next() {
		a, err := scanAssembly(rows.Scan)
		if err != nil {
			return nil, err
		}
		assemblies = append(assemblies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assemblies: %w", err)
	}
	return assemblies, nil
}

func (r *SQLiteAssemblyRepo) Update(ctx context.Context, a *domain.Assembly) error {
	query := `UPDATE assemblies SET number = ?, description = ?, price = ?, delivery_date = ?, completed_date = ?, completed = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.Number,
		a.Description,
		a.Price.String(),
		nullableTimeToString(a.DeliveryDate, dateLayout),
		nullableTimeToString(a.CompletedDate, dateLayout),
		boolToInt(a.Completed),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assembly: %w", err)
	}
	return nil
}

func (r *SQLiteAssemblyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assemblies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assembly: %w", err)
	}
	return nil
}

// scanAssembly scans one assembly row via the provided scan function,
// shared between row and rows scanning.
func scanAssembly(scan func(dest ...any) error) (*domain.Assembly, error) {
	var a domain.Assembly
	var priceStr, createdAtStr, updatedAtStr string
	var deliveryStr, completedDateStr sql.NullString
	var completed int

	err := scan(&a.ID, &a.ProjectID, &a.Number, &a.Description, &priceStr,
		&deliveryStr, &completedDateStr, &completed, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assembly: %w", err)
	}

	a.Price, err = parseDecimal(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parsing price: %w", err)
	}
	a.Completed = intToBool(completed)
	a.DeliveryDate = parseNullableTime(deliveryStr, dateLayout)
	a.CompletedDate = parseNullableTime(completedDateStr, dateLayout)
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
