package service

import (
	"context"

	"github.com/atinyakov/radclients/internal/models"
	"github.com/atinyakov/radclients/internal/repository"
)

// ZoneService exposes the zone lookup table.
type ZoneService struct {
	repos repository.Manager
}

// NewZoneService constructs a ZoneService.
func NewZoneService(repos repository.Manager) *ZoneService {
	return &ZoneService{repos: repos}
}

// List returns every zone.
func (s *ZoneService) List(ctx context.Context) ([]models.Zone, error) {
	return s.repos.Zones().List(ctx)
}
