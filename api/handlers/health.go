package handlers

import (
	"context"
	"net/http"

	"portfolio-feeds-api/api/dto/responses"

	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	store FeedStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(feedStore FeedStore) *HealthHandler {
	return &HealthHandler{store: feedStore}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	snap := h.store.Snapshot()

	status := "ok"
	if snap.ConfigErr != nil {
		status = "degraded"
	}

	return &HealthOutput{
		Body: responses.HealthResponse{Status: status, Feeds: len(snap.Feeds)},
	}, nil
}
