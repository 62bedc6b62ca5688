package retail

import (
	"context"
	"net/http"
)

func (c *Client) VerifyBiometric(ctx context.Context, in BiometricVerificationInput) (BiometricVerificationOutput, error) {
	return call[BiometricVerificationOutput](ctx, c, http.MethodPost, "/api/safety/biometric-verify", in)
}

func (c *Client) GetStoreSentiment(ctx context.Context) (SentimentData, error) {
	return call[SentimentData](ctx, c, http.MethodGet, "/api/safety/sentiment", nil)
}

func (c *Client) TriggerEmergencyAlert(ctx context.Context, alert EmergencyAlert) (EmergencyAlertReceipt, error) {
	return call[EmergencyAlertReceipt](ctx, c, http.MethodPost, "/api/safety/emergency", alert)
}

func (c *Client) GetColdChainMetrics(ctx context.Context) ([]ColdChainMetric, error) {
	return list[ColdChainMetric](ctx, c, "/api/safety/cold-chain", "")
}

func (c *Client) GetWasteMetrics(ctx context.Context) ([]WasteMetric, error) {
	return list[WasteMetric](ctx, c, "/api/safety/waste", "")
}
