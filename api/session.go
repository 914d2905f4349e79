// Copyright 2026 The Hearth Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hearth-estates/hearth/lib/schema"
)

// Session is an authenticated API client bound to one principal's
// bearer token. Obtain one from [Client.Login] or
// [Client.SessionFromToken].
//
// A Session never retries. When any call returns 401 the invalidation
// callback (if set) fires exactly once per call before the error is
// returned; the session manager uses it to clear local identity
// state.
type Session struct {
	client    *Client
	token     string
	principal schema.Principal

	// onInvalid is called when the server answers 401. Set by the
	// session manager via OnAuthFailure.
	onInvalid func()
}

// Principal returns the identity this session was created with.
func (s *Session) Principal() schema.Principal { return s.principal }

// Token returns the raw bearer token, for persistence between CLI
// invocations.
func (s *Session) Token() string { return s.token }

// OnAuthFailure registers a callback fired whenever the server
// rejects this session's credential with a 401. At most one callback
// is held; a later call replaces the earlier one.
func (s *Session) OnAuthFailure(callback func()) { s.onInvalid = callback }

// TokenExpiry reports the bearer token's expiry claim, if present.
// The signature is NOT verified — only the server can do that — so
// the result is a UI hint ("session expires in 5m"), never an
// authorization decision.
func (s *Session) TokenExpiry() (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}

// do wraps Client.doRequest with the session token and the 401
// invalidation hook.
func (s *Session) do(ctx context.Context, method, path string, requestBody any, query url.Values) ([]byte, error) {
	body, err := s.client.doRequest(ctx, method, path, s.token, requestBody, query)
	if IsAuthentication(err) && s.onInvalid != nil {
		s.onInvalid()
	}
	return body, err
}

// FetchBookings lists the bookings visible to this session's
// principal, using the role-specific endpoint: customers see their
// own requests, owners see requests against their listings, admins
// see everything.
func (s *Session) FetchBookings(ctx context.Context) ([]schema.Booking, error) {
	var path string
	switch s.principal.Role {
	case schema.RoleCustomer:
		path = "/bookings/my/customer"
	case schema.RolePropertyOwner:
		path = "/bookings/my/owner"
	case schema.RoleAdmin:
		path = "/bookings/admin/all"
	default:
		return nil, fmt.Errorf("api: no booking view for role %q", s.principal.Role)
	}

	body, err := s.do(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching bookings: %w", err)
	}

	var bookings []schema.Booking
	if err := json.Unmarshal(body, &bookings); err != nil {
		return nil, fmt.Errorf("api: failed to parse booking list: %w", err)
	}
	return bookings, nil
}

// CreateBooking submits a visit request. The server assigns the ID,
// both PENDING statuses, and the creation timestamp, and returns the
// authoritative representation.
func (s *Session) CreateBooking(ctx context.Context, request CreateBookingRequest) (*schema.Booking, error) {
	body, err := s.do(ctx, "POST", "/bookings", request, nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating booking: %w", err)
	}
	return parseBooking(body)
}

// PatchBookingStatus requests a status transition. The server decides
// whether the transition is still legal; a 409 means the booking
// changed concurrently and the caller must re-fetch before retrying.
func (s *Session) PatchBookingStatus(ctx context.Context, bookingID int64, newStatus schema.BookingStatus, notes string) (*schema.Booking, error) {
	path := "/bookings/" + strconv.FormatInt(bookingID, 10) + "/status"
	body, err := s.do(ctx, "PATCH", path, StatusUpdateRequest{NewStatus: newStatus, Notes: notes}, nil)
	if err != nil {
		return nil, fmt.Errorf("api: updating booking %d status: %w", bookingID, err)
	}
	return parseBooking(body)
}

// ConfirmPaymentManual records an owner-attested offline payment for
// the booking. Idempotent server-side: confirming an already-RECEIVED
// booking changes nothing.
func (s *Session) ConfirmPaymentManual(ctx context.Context, bookingID int64) (*schema.Booking, error) {
	path := "/payments/booking/" + strconv.FormatInt(bookingID, 10) + "/confirm-manual"
	body, err := s.do(ctx, "POST", path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: confirming payment for booking %d: %w", bookingID, err)
	}
	return parseBooking(body)
}

// CreateProperty submits a new listing (owner/admin).
func (s *Session) CreateProperty(ctx context.Context, draft schema.PropertyDraft) (*schema.Property, error) {
	body, err := s.do(ctx, "POST", "/properties", draft, nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating property: %w", err)
	}
	return parseProperty(body)
}

// UpdateProperty replaces a listing's mutable fields (owner/admin).
func (s *Session) UpdateProperty(ctx context.Context, propertyID int64, draft schema.PropertyDraft) (*schema.Property, error) {
	path := "/owner/properties/" + strconv.FormatInt(propertyID, 10)
	body, err := s.do(ctx, "PUT", path, draft, nil)
	if err != nil {
		return nil, fmt.Errorf("api: updating property %d: %w", propertyID, err)
	}
	return parseProperty(body)
}

// DeleteProperty removes a listing (owner endpoint).
func (s *Session) DeleteProperty(ctx context.Context, propertyID int64) error {
	path := "/owner/properties/" + strconv.FormatInt(propertyID, 10)
	if _, err := s.do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("api: deleting property %d: %w", propertyID, err)
	}
	return nil
}

// AdminListProperties lists every property regardless of status,
// including PENDING_APPROVAL submissions (admin only).
func (s *Session) AdminListProperties(ctx context.Context) ([]schema.Property, error) {
	body, err := s.do(ctx, "GET", "/admin/properties", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing properties as admin: %w", err)
	}

	var properties []schema.Property
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, fmt.Errorf("api: failed to parse property list: %w", err)
	}
	return properties, nil
}

// AdminDeleteProperty removes any listing (admin only).
func (s *Session) AdminDeleteProperty(ctx context.Context, propertyID int64) error {
	path := "/admin/properties/" + strconv.FormatInt(propertyID, 10)
	if _, err := s.do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("api: deleting property %d as admin: %w", propertyID, err)
	}
	return nil
}

// UploadImages attaches images to a listing as one multipart request
// (owner endpoint). Files are sent in order under the "images" field;
// each part carries the file's ContentType when set.
func (s *Session) UploadImages(ctx context.Context, propertyID int64, files []ImageUpload) error {
	if len(files) == 0 {
		return fmt.Errorf("api: no images to upload")
	}

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	quoter := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoter.Replace(file.Filename)))
		if file.ContentType != "" {
			header.Set("Content-Type", file.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("api: building multipart body: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("api: building multipart body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("api: building multipart body: %w", err)
	}

	path := "/owner/properties/" + strconv.FormatInt(propertyID, 10) + "/images"
	_, err := s.client.doRequestRaw(ctx, "POST", path, s.token, writer.FormDataContentType(), &buffer)
	if IsAuthentication(err) && s.onInvalid != nil {
		s.onInvalid()
	}
	if err != nil {
		return fmt.Errorf("api: uploading images for property %d: %w", propertyID, err)
	}
	return nil
}

// SearchProperties is the authenticated view of the public search;
// the query semantics are identical.
func (s *Session) SearchProperties(ctx context.Context, query url.Values) ([]schema.Property, error) {
	body, err := s.do(ctx, "GET", "/properties", nil, query)
	if err != nil {
		return nil, fmt.Errorf("api: property search failed: %w", err)
	}

	var properties []schema.Property
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, fmt.Errorf("api: failed to parse property list: %w", err)
	}
	return properties, nil
}

func parseBooking(body []byte) (*schema.Booking, error) {
	var booking schema.Booking
	if err := json.Unmarshal(body, &booking); err != nil {
		return nil, fmt.Errorf("api: failed to parse booking: %w", err)
	}
	return &booking, nil
}

func parseProperty(body []byte) (*schema.Property, error) {
	var property schema.Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, fmt.Errorf("api: failed to parse property: %w", err)
	}
	return &property, nil
}
