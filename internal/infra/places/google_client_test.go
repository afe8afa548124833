package places

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lunchlog/config"
	"lunchlog/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) service.PlaceResolver {
	t.Helper()

	cfg := &config.Config{
		Places: &config.PlacesConfig{
			APIKey:  "test-api-key",
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		},
	}

	client, err := NewGooglePlacesClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client
}

func TestGooglePlacesClient_Resolve(t *testing.T) {
	var capturedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchText", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t,
			"places.id,places.displayName,places.types,places.postalAddress,places.internationalPhoneNumber",
			r.Header.Get("X-Goog-FieldMask"),
		)

		var req struct {
			TextQuery string `json:"textQuery"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		capturedQuery = req.TextQuery

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"places": [{
				"id": "ChIJtest123",
				"displayName": {"text": "Trattoria Bella"},
				"types": ["italian_restaurant", "restaurant"],
				"postalAddress": {
					"addressLines": ["Hauptstrasse 1"],
					"locality": "Berlin",
					"postalCode": "10115",
					"regionCode": "DE"
				},
				"internationalPhoneNumber": "+49 30 1234567"
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resolved, err := client.Resolve(context.Background(), "Trattoria Bella", service.AddressDraft{
		Street:     "Hauptstrasse 1",
		Locality:   "Berlin",
		PostalCode: "10115",
		RegionCode: "DE",
	})
	require.NoError(t, err)

	assert.Equal(t, "Trattoria Bella, Hauptstrasse 1, Berlin, 10115, DE", capturedQuery)
	assert.Equal(t, "ChIJtest123", resolved.ExternalID)
	assert.Equal(t, "Hauptstrasse 1", resolved.Street)
	assert.Equal(t, "Berlin", resolved.Locality)
	assert.Equal(t, "10115", resolved.PostalCode)
	assert.Equal(t, "DE", resolved.RegionCode)
	assert.Equal(t, "+49 30 1234567", resolved.PhoneNumber)
	assert.Equal(t, []string{"italian_restaurant", "restaurant"}, resolved.TypeTags)
}

func TestGooglePlacesClient_Resolve_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resolved, err := client.Resolve(context.Background(), "Nowhere", service.AddressDraft{})
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, service.ErrNoMatch)
}

func TestGooglePlacesClient_Resolve_MissingAddressLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"places": [{
				"id": "ChIJnostreet",
				"displayName": {"text": "Ghost Kitchen"},
				"postalAddress": {"locality": "Berlin"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resolved, err := client.Resolve(context.Background(), "Ghost Kitchen", service.AddressDraft{})
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, service.ErrNoMatch)
}

func TestGooglePlacesClient_Resolve_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "API key invalid"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resolved, err := client.Resolve(context.Background(), "Somewhere", service.AddressDraft{})
	assert.Nil(t, resolved)

	var upstreamErr *service.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusForbidden, upstreamErr.StatusCode)
	assert.Equal(t, "API key invalid", upstreamErr.Message)
}

func TestGooglePlacesClient_Resolve_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed server makes every request fail at the dial.

	client := newTestClient(t, server.URL)

	resolved, err := client.Resolve(context.Background(), "Somewhere", service.AddressDraft{})
	assert.Nil(t, resolved)

	var transportErr *service.TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestNewGooglePlacesClient_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{Places: &config.PlacesConfig{}}

	client, err := NewGooglePlacesClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Nil(t, client)
	assert.Error(t, err)
}
