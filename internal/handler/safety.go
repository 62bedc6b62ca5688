package handler

import "net/http"

func (h *Handler) VerifyBiometric(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.VerifyBiometric)
}

func (h *Handler) EmergencyAlert(w http.ResponseWriter, r *http.Request) {
	relay(w, r, h.client.TriggerEmergencyAlert)
}

func (h *Handler) StoreSentiment(w http.ResponseWriter, r *http.Request) {
	data, err := h.client.GetStoreSentiment(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) ColdChainMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.client.GetColdChainMetrics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func (h *Handler) WasteMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.client.GetWasteMetrics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
