package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// maxRosterSize bounds one import so a runaway payload cannot hold a
// transaction open across tens of thousands of inserts.
const maxRosterSize = 5000

// RosterStore defines the data access methods ImportService depends on.
type RosterStore interface {
	ImportProviders(ctx context.Context, reqs []models.CreateProviderRequest, opts models.ImportOptions, actor models.Actor) (*models.ImportResult, error)
}

// Compile-time check: *ImportService must satisfy domain.ImportService.
var _ domain.ImportService = (*ImportService)(nil)

// ImportService validates provider rosters and hands clean ones to the
// store for the all-or-nothing import transaction.
type ImportService struct {
	store RosterStore
	log   *logrus.Logger
}

// NewImportService creates an ImportService.
func NewImportService(store RosterStore, log *logrus.Logger) *ImportService {
	return &ImportService{store: store, log: log}
}

// ImportProviders validates every roster row up front, returning the full
// list of row errors without writing anything when any row is invalid.
// Valid rosters import in a single transaction.
func (s *ImportService) ImportProviders(
	ctx context.Context,
	reqs []models.CreateProviderRequest,
	opts models.ImportOptions,
	actor models.Actor,
) (*models.ImportResult, error) {
	if len(reqs) == 0 {
		return nil, models.ErrEmptyRoster
	}

	if len(reqs) > maxRosterSize {
		return nil, models.ErrRosterTooLarge
	}

	var errs []string

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	if len(errs) > 0 {
		return &models.ImportResult{Errors: errs}, nil
	}

	result, err := s.store.ImportProviders(ctx, reqs, opts, actor)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rows":    len(reqs),
		"created": result.Created,
		"skipped": result.Skipped,
		"dry_run": opts.DryRun,
		"actor":   actor.Email,
	}).Info("provider.import")

	return result, nil
}
