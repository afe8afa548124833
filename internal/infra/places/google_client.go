// Package places implements the PlaceResolver interface against the Google
// Places text-search API.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"lunchlog/config"
	"lunchlog/internal/domain/service"

	"github.com/pkg/errors"
)

// fieldMask limits the response to the fields the enrichment pipeline
// actually stores. Keeping it tight also keeps the per-request billing tier low.
const fieldMask = "places.id,places.displayName,places.types,places.postalAddress,places.internationalPhoneNumber"

// googlePlacesClient implements PlaceResolver using the searchText endpoint
type googlePlacesClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGooglePlacesClient creates a PlaceResolver backed by the Google Places API
func NewGooglePlacesClient(cfg *config.Config, logger *slog.Logger) (service.PlaceResolver, error) {
	if cfg.Places == nil || cfg.Places.APIKey == "" {
		return nil, errors.New("places API key is required")
	}

	return &googlePlacesClient{
		baseURL: strings.TrimRight(cfg.Places.BaseURL, "/"),
		apiKey:  cfg.Places.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Places.Timeout,
		},
		logger: logger,
	}, nil
}

type searchTextRequest struct {
	TextQuery string `json:"textQuery"`
}

type searchTextResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Types         []string `json:"types"`
		PostalAddress struct {
			AddressLines []string `json:"addressLines"`
			Locality     string   `json:"locality"`
			PostalCode   string   `json:"postalCode"`
			RegionCode   string   `json:"regionCode"`
		} `json:"postalAddress"`
		InternationalPhoneNumber string `json:"internationalPhoneNumber"`
	} `json:"places"`
}

type upstreamErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Resolve issues a single text search and maps the first result. The query
// joins the draft fields in a fixed order so identical drafts hit the same
// upstream cache entry.
func (c *googlePlacesClient) Resolve(ctx context.Context, name string, address service.AddressDraft) (*service.ResolvedPlace, error) {
	query := strings.Join([]string{
		name,
		address.Street,
		address.Locality,
		address.PostalCode,
		address.RegionCode,
	}, ", ")

	body, err := json.Marshal(searchTextRequest{TextQuery: query})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &service.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var upstream upstreamErrorResponse
		// Best effort: the body may not be the documented error envelope.
		_ = json.Unmarshal(respBody, &upstream)

		return nil, &service.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstream.Error.Message,
		}
	}

	var result searchTextResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &service.TransportError{Err: err}
	}

	if len(result.Places) == 0 {
		return nil, service.ErrNoMatch
	}

	// Only the first candidate is considered; ranking is the upstream's job.
	place := result.Places[0]
	if len(place.PostalAddress.AddressLines) == 0 {
		c.logger.Warn("place result missing address lines, treating as no match",
			slog.String("place_id", place.ID),
		)

		return nil, service.ErrNoMatch
	}

	return &service.ResolvedPlace{
		ExternalID:  place.ID,
		Street:      place.PostalAddress.AddressLines[0],
		Locality:    place.PostalAddress.Locality,
		PostalCode:  place.PostalAddress.PostalCode,
		RegionCode:  place.PostalAddress.RegionCode,
		PhoneNumber: place.InternationalPhoneNumber,
		TypeTags:    place.Types,
	}, nil
}
