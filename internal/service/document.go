package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// DocumentStore is the data-access interface DocumentService depends on.
// It reuses domain.DocumentService since the method sets are identical, avoiding duplication.
type DocumentStore = domain.DocumentService

// Compile-time check: *DocumentService must satisfy domain.DocumentService.
var _ domain.DocumentService = (*DocumentService)(nil)

// DocumentService wraps DocumentStore with audit-trail logging.
type DocumentService struct {
	store DocumentStore
	log   *logrus.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(store DocumentStore, log *logrus.Logger) *DocumentService {
	return &DocumentService{store: store, log: log}
}

// ListDocuments returns a filtered, paginated document list (pass-through).
func (s *DocumentService) ListDocuments(
	ctx context.Context, opts models.DocumentQueryOpts,
) ([]models.MissingDocument, bool, error) {
	return s.store.ListDocuments(ctx, opts)
}

// GetDocument returns a single missing-document record by ID (pass-through).
func (s *DocumentService) GetDocument(ctx context.Context, id string) (*models.MissingDocument, error) {
	return s.store.GetDocument(ctx, id)
}

// CreateDocument records a document request against a provider.
func (s *DocumentService) CreateDocument(
	ctx context.Context, req models.CreateDocumentRequest, actor models.Actor,
) (*models.MissingDocument, error) {
	d, err := s.store.CreateDocument(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "document.create", d.ID, actor)

	return d, nil
}

// UpdateDocument applies a partial update to a missing-document record.
func (s *DocumentService) UpdateDocument(
	ctx context.Context, id string, req models.UpdateDocumentRequest, actor models.Actor,
) (*models.MissingDocument, error) {
	d, err := s.store.UpdateDocument(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "document.update", d.ID, actor)

	return d, nil
}

// DeleteDocument removes a missing-document record.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string, actor models.Actor) error {
	if err := s.store.DeleteDocument(ctx, id, actor); err != nil {
		return err
	}

	auditLog(s.log, "document.delete", id, actor)

	return nil
}
