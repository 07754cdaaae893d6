package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
)

// SQLiteSubassemblyRepo implements SubassemblyRepo using a SQLite database.
type SQLiteSubassemblyRepo struct {
	db db.DBTX
}

// NewSQLiteSubassemblyRepo creates a new SQLiteSubassemblyRepo.
func NewSQLiteSubassemblyRepo(conn db.DBTX) *SQLiteSubassemblyRepo {
	return &SQLiteSubassemblyRepo{db: conn}
}

const subassemblyColumns = `id, assembly_id, number, completed, created_at, updated_at`

func (r *SQLiteSubassemblyRepo) Create(ctx context.Context, s *domain.Subassembly) error {
	query := `INSERT INTO subassemblies (` + subassemblyColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.AssemblyID,
		s.Number,
		boolToInt(s.Completed),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subassembly: %w", err)
	}
	return nil
}

func (r *SQLiteSubassemblyRepo) GetByID(ctx context.Context, id string) (*domain.Subassembly, error) {
	query := `SELECT ` + subassemblyColumns + ` FROM subassemblies WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSubassembly(func(dest ...any) error { return row.Scan(dest...) })
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subassembly: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSubassemblyRepo) ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Subassembly, error) {
	query := `SELECT ` + subassemblyColumns + ` FROM subassemblies WHERE assembly_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query, assemblyID)
	if err != nil {
		return nil, fmt.Errorf("listing subassemblies: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Subassembly
	for rows.Next() {
		s, err := scanSubassembly(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subassemblies: %w", err)
	}
	return subs, nil
}

func (r *SQLiteSubassemblyRepo) Update(ctx context.Context, s *domain.Subassembly) error {
	query := `UPDATE subassemblies SET number = ?, completed = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Number,
		boolToInt(s.Completed),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subassembly: %w", err)
	}
	return nil
}

func (r *SQLiteSubassemblyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subassemblies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subassembly: %w", err)
	}
	return nil
}

func scanSubassembly(scan func(dest ...any) error) (*domain.Subassembly, error) {
	var s domain.Subassembly
	var createdAtStr, updatedAtStr string
	var completed int

	err := scan(&s.ID, &s.AssemblyID, &s.Number, &completed, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subassembly: %w", err)
	}

	s.Completed = intToBool(completed)
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
