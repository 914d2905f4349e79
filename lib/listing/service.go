// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/policy"
	"github.com/hearth-estates/hearth/lib/schema"
)

// Searcher is the read side of the property catalog. Implemented by
// both [api.Client] (public) and [api.Session] (authenticated).
type Searcher interface {
	SearchProperties(ctx context.Context, query url.Values) ([]schema.Property, error)
}

// Remote is the mutating side of the property catalog, implemented by
// [api.Session].
type Remote interface {
	CreateProperty(ctx context.Context, draft schema.PropertyDraft) (*schema.Property, error)
	UpdateProperty(ctx context.Context, propertyID int64, draft schema.PropertyDraft) (*schema.Property, error)
	DeleteProperty(ctx context.Context, propertyID int64) error
	AdminDeleteProperty(ctx context.Context, propertyID int64) error
	UploadImages(ctx context.Context, propertyID int64, files []api.ImageUpload) error
}

// ErrNotPermitted means the principal's role or ownership does not
// admit the requested property mutation.
var ErrNotPermitted = errors.New("listing: action not permitted for this principal")

// Service validates and gates property operations. Create one per
// process; it is stateless apart from the validator instance.
type Service struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a Service. logger may be nil for slog.Default().
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// List fetches the properties matching the filter. The result is a
// finite snapshot; the client performs no re-filtering of its own.
func (s *Service) List(ctx context.Context, searcher Searcher, filter Filter) ([]schema.Property, error) {
	return searcher.SearchProperties(ctx, filter.Query())
}

// ValidateDraft checks a property draft against the schema's
// constraints. The returned error is user-facing.
func (s *Service) ValidateDraft(draft schema.PropertyDraft) error {
	err := s.validate.Struct(draft)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		first := invalid[0]
		return fmt.Errorf("listing: invalid %s (constraint %q)", first.Field(), first.Tag())
	}
	return fmt.Errorf("listing: invalid draft: %w", err)
}

// Create submits a new listing after validating the draft and the
// principal's role.
func (s *Service) Create(ctx context.Context, remote Remote, principal schema.Principal, draft schema.PropertyDraft) (*schema.Property, error) {
	if !policy.CanCreateProperty(principal) {
		return nil, ErrNotPermitted
	}
	if err := s.ValidateDraft(draft); err != nil {
		return nil, err
	}
	created, err := remote.CreateProperty(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info("listing created", "property_id", created.ID, "city", created.City)
	return created, nil
}

// Update replaces a listing's mutable fields. Requires the EDIT
// action on the current listing.
func (s *Service) Update(ctx context.Context, remote Remote, principal schema.Principal, current schema.Property, draft schema.PropertyDraft) (*schema.Property, error) {
	if !policy.AllowedPropertyActions(principal, current).Contains(schema.ActionEditProperty) {
		return nil, ErrNotPermitted
	}
	if err := s.ValidateDraft(draft); err != nil {
		return nil, err
	}
	updated, err := remote.UpdateProperty(ctx, current.ID, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info("listing updated", "property_id", current.ID)
	return updated, nil
}

// Delete removes a listing. Admins go through the admin endpoint,
// owners through their own.
func (s *Service) Delete(ctx context.Context, remote Remote, principal schema.Principal, current schema.Property) error {
	if !policy.AllowedPropertyActions(principal, current).Contains(schema.ActionDeleteProperty) {
		return ErrNotPermitted
	}
	var err error
	if principal.IsAdmin() {
		err = remote.AdminDeleteProperty(ctx, current.ID)
	} else {
		err = remote.DeleteProperty(ctx, current.ID)
	}
	if err != nil {
		return err
	}
	s.logger.Info("listing deleted", "property_id", current.ID)
	return nil
}

// AttachImages uploads images for a listing. Requires the EDIT
// action.
func (s *Service) AttachImages(ctx context.Context, remote Remote, principal schema.Principal, current schema.Property, files []api.ImageUpload) error {
	if !policy.AllowedPropertyActions(principal, current).Contains(schema.ActionEditProperty) {
		return ErrNotPermitted
	}
	return remote.UploadImages(ctx, current.ID, files)
}
