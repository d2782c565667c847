package callbacks

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

// PGStore persists callback registrations in postgres.
type PGStore struct {
	DB *pg.DB
}

func NewPGStore(db *pg.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Put(ctx context.Context, reg *models.CallbackRegistration) error {
	if _, err := s.DB.ModelContext(ctx, reg).Insert(); err != nil {
		return fmt.Errorf("storing callback registration: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, token string) (*models.CallbackRegistration, bool, error) {
	reg := &models.CallbackRegistration{Token: token}
	err := s.DB.ModelContext(ctx, reg).WherePK().Select()
	if err == pg.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading callback registration: %w", err)
	}
	return reg, true, nil
}

func (s *PGStore) Delete(ctx context.Context, token string) error {
	reg := &models.CallbackRegistration{Token: token}
	if _, err := s.DB.ModelContext(ctx, reg).WherePK().Delete(); err != nil {
		return fmt.Errorf("deleting callback registration: %w", err)
	}
	return nil
}

func (s *PGStore) DeleteGroup(ctx context.Context, group string) error {
	_, err := s.DB.ModelContext(ctx, (*models.CallbackRegistration)(nil)).
		Where("group_id = ?", group).
		Delete()
	if err != nil {
		return fmt.Errorf("deleting callback group: %w", err)
	}
	return nil
}
