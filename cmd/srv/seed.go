package main

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/migration"
	"github.com/nasalinha/backend/pkg/crypto"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     entity.GlobalRole
}

// startSeed inserts the initial users and the first season. Running it twice
// is safe; existing rows are kept.
func (s *srv) startSeed(cliCtx *cli.Context) error {
	s.loadAll(cliCtx)

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	users := []seedUser{
		{name: "Admin", email: "admin@nasalinha.com", password: "admin123", role: entity.RoleAdmin},
		{name: "Membro", email: "membro@nasalinha.com", password: "membro123", role: entity.RoleMember},
		{name: "Trainee", email: "trainee@nasalinha.com", password: "trainee123", role: entity.RoleTrainee},
	}

	for _, u := range users {
		if err := s.seedUser(u); err != nil {
			return err
		}
	}

	return s.seedSeason()
}

func (s *srv) seedUser(u seedUser) error {
	_, err := s.userRepo.GetByEmail(s.ctx, u.email)
	if err == nil {
		s.logger.Infof("User %s already exists, skipping", u.email)
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := crypto.HashPassword(u.password)
	if err != nil {
		return err
	}

	err = s.userRepo.Create(s.ctx, &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Name:     u.name,
		Email:    u.email,
		Password: hashedPassword,
		Role:     u.role,
		IsActive: true,
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Seeded user %s with role %s", u.email, u.role)
	return nil
}

func (s *srv) seedSeason() error {
	seasons, err := s.seasonRepo.GetList(s.ctx)
	if err != nil {
		return err
	}

	if len(seasons) > 0 {
		s.logger.Infof("Seasons already exist, skipping")
		return nil
	}

	err = s.seasonRepo.Create(s.ctx, &entity.Season{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             "Temporada 2025.1",
		Description:      "Primeira temporada do NaSalinha",
		StartDate:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		PointsPerCheckIn: 10,
		IsActive:         true,
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Seeded season Temporada 2025.1")
	return nil
}
