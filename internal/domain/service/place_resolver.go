// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"context"
	"fmt"

	"lunchlog/internal/errors"
)

// AddressDraft is the free-form, user-submitted address of a restaurant draft.
type AddressDraft struct {
	Street     string `json:"street"`
	Locality   string `json:"locality"`
	PostalCode string `json:"postal_code"`
	RegionCode string `json:"region_code"`
}

// RestaurantDraft is the unresolved restaurant data attached to a receipt at
// creation time. It is consumed by the enrichment pipeline, never persisted.
type RestaurantDraft struct {
	Name    string       `json:"name"`
	Address AddressDraft `json:"address"`
}

// ResolvedPlace is the structured record a successful place lookup maps to.
type ResolvedPlace struct {
	ExternalID  string   // Stable place identifier from the resolver.
	Street      string   // First line of the resolved address.
	Locality    string
	PostalCode  string
	RegionCode  string
	PhoneNumber string   // May be empty.
	TypeTags    []string // Resolver taxonomy, stored as the restaurant's food types.
}

// ErrNoMatch is returned when the resolver responds successfully but finds
// no place for the query.
var ErrNoMatch = errors.New("no place matched the query")

// TransportError marks network-level resolve failures (DNS, TLS, timeout).
// It is distinguished from upstream errors so callers can pick a retry policy.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("place resolver transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError marks a non-2xx response from the resolver endpoint.
type UpstreamError struct {
	StatusCode int
	Message    string // Upstream error message, if the response carried one.
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("place resolver upstream error (status %d): %s", e.StatusCode, e.Message)
}

// PlaceResolver resolves a restaurant draft into a canonical place record
// through an external text-search API. Resolution is best-effort: every
// failure mode is tolerated by callers.
type PlaceResolver interface {
	// Resolve issues one outbound lookup for the draft and maps the first
	// result. Returns ErrNoMatch, *TransportError or *UpstreamError on failure.
	Resolve(ctx context.Context, name string, address AddressDraft) (*ResolvedPlace, error)
}
