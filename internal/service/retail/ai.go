package retail

import (
	"context"
	"net/http"
)

func (c *Client) GenerateDescription(ctx context.Context, in GenerateDescriptionInput) (GenerateDescriptionOutput, error) {
	return call[GenerateDescriptionOutput](ctx, c, http.MethodPost, "/ai/generate-description", in)
}

func (c *Client) SemanticSearch(ctx context.Context, in SemanticSearchInput) (SemanticSearchOutput, error) {
	return call[SemanticSearchOutput](ctx, c, http.MethodPost, "/ai/semantic-search", in)
}

func (c *Client) SummarizeFeedback(ctx context.Context, in SummarizeFeedbackInput) (SummarizeFeedbackOutput, error) {
	return call[SummarizeFeedbackOutput](ctx, c, http.MethodPost, "/ai/summarize-feedback", in)
}

func (c *Client) Recommendations(ctx context.Context, in RecommendationsInput) (RecommendationsOutput, error) {
	return call[RecommendationsOutput](ctx, c, http.MethodPost, "/ai/recommendations", in)
}

func (c *Client) Insights(ctx context.Context, in InsightsInput) (InsightsOutput, error) {
	return call[InsightsOutput](ctx, c, http.MethodPost, "/ai/insights", in)
}

func (c *Client) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	return call[ChatOutput](ctx, c, http.MethodPost, "/ai/chat", in)
}

// PredictDemand forwards the series as is. The backend expects ten values.
func (c *Client) PredictDemand(ctx context.Context, in DemandForecastInput) (DemandForecastOutput, error) {
	return call[DemandForecastOutput](ctx, c, http.MethodPost, "/predict-demand", in)
}
