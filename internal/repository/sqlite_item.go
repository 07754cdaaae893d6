package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
)

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

const itemColumns = `id, assembly_id, subassembly_id, name, number, description, supplier, price, quantity, qty_required, received, arrived_date, created_at, updated_at`

func (r *SQLiteItemRepo) Create(ctx context.Context, i *domain.Item) error {
	if err := i.ValidateOwner(); err != nil {
		return err
	}
	query := `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		nullableString(i.AssemblyID),
		nullableString(i.SubassemblyID),
		i.Name,
		i.Number,
		i.Description,
		i.Supplier,
		i.Price.String(),
		i.Quantity,
		i.QtyRequired,
		boolToInt(i.Received),
		nullableTimeToString(i.ArrivedDate, time.RFC3339),
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	i, err := scanItem(func(dest ...any) error { return row.Scan(dest...) })
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item: %w", ErrNotFound)
	}
	return i, err
}

func (r *SQLiteItemRepo) ListByAssembly(ctx context.Context, assemblyID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE assembly_id = ? ORDER BY number, name`
	return r.listItems(ctx, query, assemblyID)
}

func (r *SQLiteItemRepo) ListByProjectAndAssembly(ctx context.Context, projectID, assemblyID string) ([]*domain.Item, error) {
	query := `SELECT ` + prefixedItemColumns("i") + ` FROM items i
		JOIN assemblies a ON a.id = i.assembly_id
		WHERE a.project_id = ? AND i.assembly_id = ?
		ORDER BY i.number, i.name`
	return r.listItems(ctx, query, projectID, assemblyID)
}

func (r *SQLiteItemRepo) ListBySubassembly(ctx context.Context, subassemblyID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE subassembly_id = ? ORDER BY number, name`
	return r.listItems(ctx, query, subassemblyID)
}

func (r *SQLiteItemRepo) listItems(ctx context.Context, query string, args ...any) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		i, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, i *domain.Item) error {
	if err := i.ValidateOwner(); err != nil {
		return err
	}
	query := `UPDATE items SET name = ?, number = ?, description = ?, supplier = ?, price = ?, quantity = ?, qty_required = ?, received = ?, arrived_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		i.Name,
		i.Number,
		i.Description,
		i.Supplier,
		i.Price.String(),
		i.Quantity,
		i.QtyRequired,
		boolToInt(i.Received),
		nullableTimeToString(i.ArrivedDate, time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) SetReceived(ctx context.Context, id string, received bool, arrivedAt *time.Time) error {
	query := `UPDATE items SET received = ?, arrived_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		boolToInt(received),
		nullableTimeToString(arrivedAt, time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating item received flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func scanItem(scan func(dest ...any) error) (*domain.Item, error) {
	var i domain.Item
	var assemblyID, subassemblyID, arrivedStr sql.NullString
	var priceStr, createdAtStr, updatedAtStr string
	var received int

	err := scan(&i.ID, &assemblyID, &subassemblyID, &i.Name, &i.Number, &i.Description,
		&i.Supplier, &priceStr, &i.Quantity, &i.QtyRequired, &received, &arrivedStr,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	i.AssemblyID = parseNullableString(assemblyID)
	i.SubassemblyID = parseNullableString(subassemblyID)
	i.Price, err = parseDecimal(priceStr)
	if err != nil {
		return nil, fmt.Errorf("parsing price: %w", err)
	}
	i.Received = intToBool(received)
	i.ArrivedDate = parseNullableTime(arrivedStr, time.RFC3339)
	i.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	i.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &i, nil
}

// prefixedItemColumns returns itemColumns with each column qualified
// by the given table alias, for joined queries.
func prefixedItemColumns(alias string) string {
	cols := ""
	for idx, c := range []string{"id", "assembly_id", "subassembly_id", "name", "number", "description", "supplier", "price", "quantity", "qty_required", "received", "arrived_date", "created_at", "updated_at"} {
		if idx > 0 {
			cols += ", "
		}
		cols += alias + "." + c
	}
	return cols
}
