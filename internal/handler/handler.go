package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"retailgenie/gateway/internal/service"
	"retailgenie/gateway/internal/service/retail"
)

type Handler struct {
	router    *chi.Mux
	dashboard *service.DashboardService
	client    *retail.Client
}

func NewHandler(client *retail.Client, dashboard *service.DashboardService) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)

	h := &Handler{
		router:    router,
		dashboard: dashboard,
		client:    client,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/export", h.ExportProducts)
			r.Post("/bulk-delete", h.BulkDeleteProducts)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/", h.CreateOrder)
			r.Get("/export", h.ExportOrders)
			r.Put("/{id}", h.UpdateOrder)
		})

		r.Get("/analytics/overview", h.AnalyticsOverview)
		r.Get("/analytics/dashboard", h.Dashboard)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/generate-description", h.GenerateDescription)
			r.Post("/semantic-search", h.SemanticSearch)
			r.Post("/summarize-feedback", h.SummarizeFeedback)
			r.Post("/recommendations", h.Recommendations)
			r.Post("/insights", h.Insights)
			r.Post("/chat", h.Chat)
		})
		r.Post("/forecast", h.Forecast)

		r.Route("/safety", func(r chi.Router) {
			r.Post("/biometric-verify", h.VerifyBiometric)
			r.Get("/sentiment", h.StoreSentiment)
			r.Post("/emergency", h.EmergencyAlert)
			r.Get("/cold-chain", h.ColdChainMetrics)
			r.Get("/waste", h.WasteMetrics)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps backend failures to 502 and input problems to 400.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *retail.Error
	switch {
	case errors.As(err, &apiErr):
		log.Ctx(r.Context()).Warn().Str("upstream_error", apiErr.Message).Msg("Backend request failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: apiErr.Message})
	case errors.Is(err, service.ErrInvalidForecastInput), errors.Is(err, service.ErrUnknownCollection):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// decode reads a JSON body into v and answers 400 itself when it cannot.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}
