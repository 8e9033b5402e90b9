package services

import (
	"context"
	"fmt"

	"usersvc/internal/models"
	"usersvc/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed modes for SeedManagers.
const (
	SeedIdempotent = "idempotent"
	SeedAlways     = "always"
)

type ManagerService interface {
	SeedManagers(ctx context.Context, count int, mode string) ([]string, error)
	ListActive(ctx context.Context) ([]*models.Manager, error)
}

type managerService struct {
	managerRepo repositories.ManagerRepository
	log         *zap.Logger
}

func NewManagerService(managerRepo repositories.ManagerRepository, log *zap.Logger) ManagerService {
	return &managerService{managerRepo: managerRepo, log: log}
}

// SeedManagers inserts count active managers with fresh ids. In idempotent
// mode nothing is inserted when the table already holds managers. A failed
// insert is logged and the remaining managers are still attempted.
func (s *managerService) SeedManagers(ctx context.Context, count int, mode string) ([]string, error) {
	if mode != SeedAlways {
		existing, err := s.managerRepo.Count(ctx)
		if err != nil {
			return nil, storeError("count managers", err)
		}
		if existing > 0 {
			s.log.Info("managers already seeded", zap.Int("existing", existing))
			return nil, nil
		}
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		m := &models.Manager{ID: uuid.New().String()}
		if err := s.managerRepo.Create(ctx, m); err != nil {
			s.log.Error("Error inserting manager", zap.String("manager_id", m.ID), zap.Error(err))
			continue
		}
		s.log.Info("Inserted manager", zap.String("manager_id", m.ID))
		ids = append(ids, m.ID)
	}
	if count > 0 && len(ids) == 0 {
		return nil, fmt.Errorf("seed managers: no manager inserted")
	}
	return ids, nil
}

func (s *managerService) ListActive(ctx context.Context) ([]*models.Manager, error) {
	managers, err := s.managerRepo.ListActive(ctx)
	if err != nil {
		return nil, storeError("list managers", err)
	}
	return managers, nil
}
