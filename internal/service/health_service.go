package service

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

type HealthReport struct {
	Status      string   `json:"status"`
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
	Error       string   `json:"error,omitempty"`
}

type HealthService interface {
	Check(ctx context.Context) HealthReport
	Live(ctx context.Context) bool
}

type healthService struct {
	store repository.StoreStatus
	log   logger.Logger
}

func NewHealthService(store repository.StoreStatus, log logger.Logger) HealthService {
	return &healthService{store: store, log: log}
}

// Check always produces a report; store failures turn into a degraded status
// with an opaque error message.
func (s *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:      HealthStatusOK,
		Database:    s.store.DatabaseName(),
		Collections: []string{},
	}

	names, err := s.store.CollectionNames(ctx)
	if err != nil {
		s.log.Warnf("Health check could not reach the store: %v", err)
		report.Status = HealthStatusDegraded
		report.Error = "store unavailable"
		return report
	}
	if names != nil {
		report.Collections = names
	}
	return report
}

func (s *healthService) Live(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}
