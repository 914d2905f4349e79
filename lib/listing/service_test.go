// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/hearth-estates/hearth/api"
	"github.com/hearth-estates/hearth/lib/schema"
)

var (
	owner      = schema.Principal{UserID: 5, Role: schema.RolePropertyOwner}
	otherOwner = schema.Principal{UserID: 6, Role: schema.RolePropertyOwner}
	customer   = schema.Principal{UserID: 3, Role: schema.RoleCustomer}
	admin      = schema.Principal{UserID: 9, Role: schema.RoleAdmin}
)

type fakeCatalog struct {
	created       []schema.PropertyDraft
	updated       []int64
	deleted       []int64
	adminDeleted  []int64
	uploaded      []int64
	searchQueries []url.Values

	property *schema.Property
	results  []schema.Property
}

func (f *fakeCatalog) SearchProperties(ctx context.Context, query url.Values) ([]schema.Property, error) {
	f.searchQueries = append(f.searchQueries, query)
	return f.results, nil
}

func (f *fakeCatalog) CreateProperty(ctx context.Context, draft schema.PropertyDraft) (*schema.Property, error) {
	f.created = append(f.created, draft)
	return f.property, nil
}

func (f *fakeCatalog) UpdateProperty(ctx context.Context, propertyID int64, draft schema.PropertyDraft) (*schema.Property, error) {
	f.updated = append(f.updated, propertyID)
	return f.property, nil
}

func (f *fakeCatalog) DeleteProperty(ctx context.Context, propertyID int64) error {
	f.deleted = append(f.deleted, propertyID)
	return nil
}

func (f *fakeCatalog) AdminDeleteProperty(ctx context.Context, propertyID int64) error {
	f.adminDeleted = append(f.adminDeleted, propertyID)
	return nil
}

func (f *fakeCatalog) UploadImages(ctx context.Context, propertyID int64, files []api.ImageUpload) error {
	f.uploaded = append(f.uploaded, propertyID)
	return nil
}

func validDraft() schema.PropertyDraft {
	return schema.PropertyDraft{
		Address:    "14 Elm Street",
		City:       "Pune",
		State:      "MH",
		PostalCode: "411001",
		Price:      4500000,
		Bedrooms:   3,
		Bathrooms:  2,
		Type:       schema.TypeSale,
	}
}

func TestValidateDraft(t *testing.T) {
	service := NewService(nil)

	if err := service.ValidateDraft(validDraft()); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*schema.PropertyDraft)
	}{
		{"missing address", func(d *schema.PropertyDraft) { d.Address = "" }},
		{"missing city", func(d *schema.PropertyDraft) { d.City = "" }},
		{"zero price", func(d *schema.PropertyDraft) { d.Price = 0 }},
		{"negative price", func(d *schema.PropertyDraft) { d.Price = -1 }},
		{"negative bedrooms", func(d *schema.PropertyDraft) { d.Bedrooms = -1 }},
		{"missing type", func(d *schema.PropertyDraft) { d.Type = "" }},
		{"type outside enumeration", func(d *schema.PropertyDraft) { d.Type = "LEASE" }},
	}
	for _, test := range tests {
		draft := validDraft()
		test.mutate(&draft)
		if err := service.ValidateDraft(draft); err == nil {
			t.Errorf("%s: draft accepted", test.name)
		}
	}
}

func TestCreateGatedByRole(t *testing.T) {
	service := NewService(nil)
	catalog := &fakeCatalog{property: &schema.Property{ID: 9, City: "Pune"}}

	if _, err := service.Create(context.Background(), catalog, customer, validDraft()); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("customer create: got %v, want ErrNotPermitted", err)
	}
	if len(catalog.created) != 0 {
		t.Error("denied create reached the network")
	}

	for _, principal := range []schema.Principal{owner, admin} {
		if _, err := service.Create(context.Background(), catalog, principal, validDraft()); err != nil {
			t.Errorf("%s create: %v", principal.Role, err)
		}
	}
	if len(catalog.created) != 2 {
		t.Errorf("created %d listings, want 2", len(catalog.created))
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	service := NewService(nil)
	catalog := &fakeCatalog{}

	draft := validDraft()
	draft.Price = 0
	if _, err := service.Create(context.Background(), catalog, owner, draft); err == nil {
		t.Fatal("invalid draft accepted")
	}
	if len(catalog.created) != 0 {
		t.Error("invalid draft reached the network")
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	service := NewService(nil)
	current := schema.Property{ID: 7, OwnerID: 5}
	catalog := &fakeCatalog{property: &current}

	if _, err := service.Update(context.Background(), catalog, otherOwner, current, validDraft()); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("foreign owner update: got %v, want ErrNotPermitted", err)
	}
	if _, err := service.Update(context.Background(), catalog, owner, current, validDraft()); err != nil {
		t.Errorf("owner update: %v", err)
	}
	if _, err := service.Update(context.Background(), catalog, admin, current, validDraft()); err != nil {
		t.Errorf("admin update: %v", err)
	}
	if len(catalog.updated) != 2 {
		t.Errorf("updated %d times, want 2", len(catalog.updated))
	}
}

func TestDeleteRoutesByRole(t *testing.T) {
	service := NewService(nil)
	current := schema.Property{ID: 7, OwnerID: 5}
	catalog := &fakeCatalog{}

	if err := service.Delete(context.Background(), catalog, owner, current); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := service.Delete(context.Background(), catalog, admin, current); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(catalog.deleted) != 1 || catalog.deleted[0] != 7 {
		t.Errorf("owner deletions = %v", catalog.deleted)
	}
	if len(catalog.adminDeleted) != 1 || catalog.adminDeleted[0] != 7 {
		t.Errorf("admin deletions = %v", catalog.adminDeleted)
	}

	if err := service.Delete(context.Background(), catalog, customer, current); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("customer delete: got %v, want ErrNotPermitted", err)
	}
}

func TestAttachImagesRequiresEdit(t *testing.T) {
	service := NewService(nil)
	current := schema.Property{ID: 7, OwnerID: 5}
	catalog := &fakeCatalog{}
	files := []api.ImageUpload{{Filename: "front.jpg", ContentType: "image/jpeg", Content: []byte("...")}}

	if err := service.AttachImages(context.Background(), catalog, otherOwner, current, files); !errors.Is(err, ErrNotPermitted) {
		t.Errorf("foreign owner upload: got %v, want ErrNotPermitted", err)
	}
	if err := service.AttachImages(context.Background(), catalog, owner, current, files); err != nil {
		t.Errorf("owner upload: %v", err)
	}
	if len(catalog.uploaded) != 1 {
		t.Errorf("uploads = %v", catalog.uploaded)
	}
}

func TestListPassesFilterQuery(t *testing.T) {
	service := NewService(nil)
	catalog := &fakeCatalog{results: []schema.Property{{ID: 1}}}

	got, err := service.List(context.Background(), catalog, Filter{City: "Pune"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("results = %+v", got)
	}
	if len(catalog.searchQueries) != 1 || catalog.searchQueries[0].Get("city") != "Pune" {
		t.Errorf("queries = %v", catalog.searchQueries)
	}
}
