package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlindner/asmtrack/internal/domain"
)

var testNumberCounter atomic.Int64

func nextNumber(prefix string) string {
	return fmt.Sprintf("%s-%03d", prefix, testNumberCounter.Add(1))
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectNumber(n string) ProjectOption {
	return func(p *domain.Project) {
		p.Number = n
	}
}

func WithDeliveryDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.DeliveryDate = &d
	}
}

func WithMaterialCost(c string) ProjectOption {
	return func(p *domain.Project) {
		p.MaterialCost = decimal.RequireFromString(c)
	}
}

func NewTestProject(description string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:           uuid.New().String(),
		Number:       nextNumber("2024"),
		Description:  description,
		MaterialCost: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assembly options
type AssemblyOption func(*domain.Assembly)

func WithAssemblyPrice(p string) AssemblyOption {
	return func(a *domain.Assembly) {
		a.Price = decimal.RequireFromString(p)
	}
}

func WithAssemblyCompleted(d time.Time) AssemblyOption {
	return func(a *domain.Assembly) {
		a.Completed = true
		a.CompletedDate = &d
	}
}

func NewTestAssembly(projectID, description string, opts ...AssemblyOption) *domain.Assembly {
	now := time.Now().UTC()
	a := &domain.Assembly{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Number:      nextNumber("ASM"),
		Description: description,
		Price:       decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestSubassembly(assemblyID string) *domain.Subassembly {
	now := time.Now().UTC()
	return &domain.Subassembly{
		ID:         uuid.New().String(),
		AssemblyID: assemblyID,
		Number:     nextNumber("SUB"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Item options
type ItemOption func(*domain.Item)

func WithItemPrice(p string, qtyRequired int) ItemOption {
	return func(i *domain.Item) {
		i.Price = decimal.RequireFromString(p)
		i.QtyRequired = qtyRequired
	}
}

func WithReceived(at time.Time) ItemOption {
	return func(i *domain.Item) {
		i.MarkReceived(true, at)
	}
}

func WithSupplier(s string) ItemOption {
	return func(i *domain.Item) {
		i.Supplier = s
	}
}

// NewTestItem creates an item owned by an assembly.
func NewTestItem(assemblyID, name string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC()
	i := &domain.Item{
		ID:         uuid.New().String(),
		AssemblyID: &assemblyID,
		Name:       name,
		Number:     nextNumber("ITM"),
		Price:      decimal.Zero,
		Quantity:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewTestSubassemblyItem creates an item owned by a subassembly.
func NewTestSubassemblyItem(subassemblyID, name string, opts ...ItemOption) *domain.Item {
	i := NewTestItem("", name, opts...)
	i.AssemblyID = nil
	i.SubassemblyID = &subassemblyID
	return i
}

func NewTestUser(name string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestAssignment(projectID, userID string, role domain.AssignmentRole) *domain.Assignment {
	return &domain.Assignment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}
