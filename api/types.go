// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/hearth-estates/hearth/lib/schema"
)

// RegisterRequest is the payload for POST /users/register.
// Registering as ADMIN is rejected client-side before the request is
// sent; the server enforces the same rule.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     schema.Role `json:"role"`
}

// AuthResponse is the body of a successful POST /users/login.
type AuthResponse struct {
	Token     string      `json:"token"`
	UserID    int64       `json:"userId"`
	UserEmail string      `json:"userEmail"`
	UserRole  schema.Role `json:"userRole"`
}

// Principal converts the login response into the session's identity.
func (r AuthResponse) Principal() schema.Principal {
	return schema.Principal{
		UserID: r.UserID,
		Email:  r.UserEmail,
		Role:   r.UserRole,
	}
}

// CreateBookingRequest is the payload for POST /bookings. Status and
// payment status are server-assigned (both default to PENDING).
type CreateBookingRequest struct {
	PropertyID    int64            `json:"propertyId"`
	VisitDate     schema.Date      `json:"visitDate"`
	VisitTime     schema.TimeOfDay `json:"visitTime"`
	CustomerNotes string           `json:"customerNotes,omitempty"`
}

// StatusUpdateRequest is the payload for PATCH /bookings/{id}/status.
type StatusUpdateRequest struct {
	NewStatus schema.BookingStatus `json:"newStatus"`
	Notes     string               `json:"notes,omitempty"`
}

// ContactRequest is the payload for POST /public/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ImageUpload is one file for POST /owner/properties/{id}/images.
// Content is held in memory; listing images are small enough that
// streaming from disk is not worth the interface complexity.
type ImageUpload struct {
	// Filename is the client-side name, used as the multipart part
	// filename.
	Filename string

	// ContentType is the MIME type (e.g., "image/jpeg"). Empty means
	// the server sniffs it.
	ContentType string

	// Content is the raw file bytes.
	Content []byte
}
