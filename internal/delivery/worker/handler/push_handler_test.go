package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lunchlog/config"
	"lunchlog/internal/domain/service"
	mockusecase "lunchlog/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPushHandler(enrichmentUC *mockusecase.EnrichmentUsecase) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config:       &config.Config{},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		EnrichmentUC: enrichmentUC,
	})
}

func pushEnvelope(t *testing.T, event *service.EnrichmentEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "msg-1"
	msg.Message.Attributes = map[string]string{"receipt_id": event.ReceiptID}
	msg.Subscription = "projects/local/subscriptions/enrichment-sub"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func postPush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandlePush(c)

	return rec
}

func TestPushHandler_HandlePush(t *testing.T) {
	enrichmentUC := new(mockusecase.EnrichmentUsecase)
	h := newPushHandler(enrichmentUC)

	event := &service.EnrichmentEvent{
		RequestID: uuid.New().String(),
		ReceiptID: uuid.New().String(),
		Draft: service.RestaurantDraft{
			Name: "Trattoria Bella",
			Address: service.AddressDraft{
				Street:   "Hauptstrasse 1",
				Locality: "Berlin",
			},
		},
	}

	enrichmentUC.On("Enrich", mock.Anything, mock.MatchedBy(func(got *service.EnrichmentEvent) bool {
		return got.ReceiptID == event.ReceiptID && got.Draft.Name == event.Draft.Name
	})).Return(nil)

	rec := postPush(h, pushEnvelope(t, event))

	assert.Equal(t, http.StatusOK, rec.Code)
	enrichmentUC.AssertExpectations(t)
}

func TestPushHandler_HandlePush_InfraFailureTriggersRedelivery(t *testing.T) {
	enrichmentUC := new(mockusecase.EnrichmentUsecase)
	h := newPushHandler(enrichmentUC)

	enrichmentUC.On("Enrich", mock.Anything, mock.Anything).Return(errors.New("database down"))

	event := &service.EnrichmentEvent{ReceiptID: uuid.New().String()}
	rec := postPush(h, pushEnvelope(t, event))

	// Non-2xx makes Pub/Sub redeliver the message.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPushHandler_HandlePush_BadBase64(t *testing.T) {
	enrichmentUC := new(mockusecase.EnrichmentUsecase)
	h := newPushHandler(enrichmentUC)

	rec := postPush(h, `{"message": {"data": "%%% not base64 %%%"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	enrichmentUC.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
}

func TestPushHandler_HandlePush_BadEventJSON(t *testing.T) {
	enrichmentUC := new(mockusecase.EnrichmentUsecase)
	h := newPushHandler(enrichmentUC)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString([]byte("not json"))
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	rec := postPush(h, string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	enrichmentUC.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
}
