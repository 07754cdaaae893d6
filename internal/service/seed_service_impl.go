package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlindner/asmtrack/internal/db"
	"github.com/mlindner/asmtrack/internal/domain"
	"github.com/mlindner/asmtrack/internal/repository"
)

type seedService struct {
	uow db.UnitOfWork
}

// NewSeedService creates a SeedService that writes the demo tree in a
// single transaction.
func NewSeedService(uow db.UnitOfWork) SeedService {
	return &seedService{uow: uow}
}

// Seed inserts a demo project with two assemblies, one subassembly and
// a spread of received/outstanding items. Useful for trying out the
// TUI against a fresh database.
func (s *seedService) Seed(ctx context.Context) (*domain.Project, error) {
	now := time.Now().UTC()
	delivery := now.AddDate(0, 2, 0)

	project := &domain.Project{
		ID:           uuid.New().String(),
		Number:       "2024-001",
		Description:  "Hydraulic press retrofit",
		DeliveryDate: &delivery,
		MaterialCost: decimal.RequireFromString("12400.00"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		assemblies := repository.NewSQLiteAssemblyRepo(tx)
		subassemblies := repository.NewSQLiteSubassemblyRepo(tx)
		items := repository.NewSQLiteItemRepo(tx)
		users := repository.NewSQLiteUserRepo(tx)
		assignments := repository.NewSQLiteAssignmentRepo(tx)

		if err := projects.Create(ctx, project); err != nil {
			return fmt.Errorf("seeding project: %w", err)
		}

		manager := &domain.User{ID: uuid.New().String(), Name: "D. Okafor", CreatedAt: now, UpdatedAt: now}
		operator := &domain.User{ID: uuid.New().String(), Name: "M. Reyes", CreatedAt: now, UpdatedAt: now}
		for _, u := range []*domain.User{manager, operator} {
			if err := users.Create(ctx, u); err != nil {
				return fmt.Errorf("seeding user %q: %w", u.Name, err)
			}
		}
		seedAssignments := []*domain.Assignment{
			{ID: uuid.New().String(), ProjectID: project.ID, UserID: manager.ID, Role: domain.RoleManager, CreatedAt: now},
			{ID: uuid.New().String(), ProjectID: project.ID, UserID: operator.ID, Role: domain.RoleOperator, CreatedAt: now},
		}
		for _, a := range seedAssignments {
			if err := assignments.Create(ctx, a); err != nil {
				return fmt.Errorf("seeding assignment: %w", err)
			}
		}

		frame := &domain.Assembly{
			ID:          uuid.New().String(),
			ProjectID:   project.ID,
			Number:      "ASM-100",
			Description: "Frame weldment",
			Price:       decimal.RequireFromString("4200.00"),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		drive := &domain.Assembly{
			ID:          uuid.New().String(),
			ProjectID:   project.ID,
			Number:      "ASM-200",
			Description: "Drive unit",
			Price:       decimal.RequireFromString("8200.00"),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, a := range []*domain.Assembly{frame, drive} {
			if err := assemblies.Create(ctx, a); err != nil {
				return fmt.Errorf("seeding assembly %s: %w", a.Number, err)
			}
		}

		gearbox := &domain.Subassembly{
			ID:         uuid.New().String(),
			AssemblyID: drive.ID,
			Number:     "SUB-210",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := subassemblies.Create(ctx, gearbox); err != nil {
			return fmt.Errorf("seeding subassembly: %w", err)
		}

		arrived := now.AddDate(0, 0, -3)
		seedItems := []*domain.Item{
			{AssemblyID: &frame.ID, Name: "Side plate", Number: "ITM-101", Supplier: "Lakeside Steel", Price: decimal.RequireFromString("310.00"), QtyRequired: 2, Received: true, ArrivedDate: &arrived},
			{AssemblyID: &frame.ID, Name: "Cross brace", Number: "ITM-102", Supplier: "Lakeside Steel", Price: decimal.RequireFromString("145.00"), QtyRequired: 4},
			{AssemblyID: &frame.ID, Name: "Anchor bolt kit", Number: "ITM-103", Supplier: "FastenAll", Price: decimal.RequireFromString("28.50"), QtyRequired: 1},
			{AssemblyID: &drive.ID, Name: "Motor 15kW", Number: "ITM-201", Supplier: "Nordmotor", Price: decimal.RequireFromString("2950.00"), QtyRequired: 1},
			{SubassemblyID: &gearbox.ID, Name: "Input shaft", Number: "ITM-211", Supplier: "Precision Gear", Price: decimal.RequireFromString("480.00"), QtyRequired: 1, Received: true, ArrivedDate: &arrived},
			{SubassemblyID: &gearbox.ID, Name: "Bearing set", Number: "ITM-212", Supplier: "Precision Gear", Price: decimal.RequireFromString("164.00"), QtyRequired: 2, Received: true, ArrivedDate: &arrived},
		}
		for _, it := range seedItems {
			it.ID = uuid.New().String()
			it.CreatedAt = now
			it.UpdatedAt = now
			if err := items.Create(ctx, it); err != nil {
				return fmt.Errorf("seeding item %s: %w", it.Number, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
