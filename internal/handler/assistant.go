package handler

import (
	"context"
	"net/http"

	"retailgenie/gateway/internal/service/retail"
)

// relay decodes In, calls the backend and writes Out.
func relay[In, Out any](w http.ResponseWriter, r *http.Request, fn func(context.Context, In) (Out, error)) {
	var in In
	if !decode(w, r, &in) {
		return
	}

	out, err := fn(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.GenerateDescription)
}

func (h *Handler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.SemanticSearch)
}

func (h *Handler) SummarizeFeedback(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.SummarizeFeedback)
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.Recommendations)
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.Insights)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.Chat)
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	relay(w, r, func(ctx context.Context, in retail.DemandForecastInput) (retail.DemandForecastOutput, error) {
		return h.dashboard.Forecast(ctx, in.LastTenDays)
	})
}
