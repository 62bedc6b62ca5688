package retail

type Tone string

const (
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
	TonePlayful  Tone = "playful"
)

type GenerateDescriptionInput struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Features []string `json:"features,omitempty"`
	Tone     Tone     `json:"tone,omitempty"`
}

type GenerateDescriptionOutput struct {
	Description string `json:"description"`
}

type SemanticSearchInput struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type SearchHit struct {
	ID          string  `json:"id"`
	Score       float64 `json:"score"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
}

type SemanticSearchOutput struct {
	Results []SearchHit `json:"results"`
}

type SummarizeFeedbackInput struct {
	Feedback  string `json:"feedback,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

type SummarizeFeedbackOutput struct {
	Summary       string   `json:"summary"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	TotalReviews  *int     `json:"total_reviews,omitempty"`
}

type RecommendationsInput struct {
	ProductID string `json:"product_id,omitempty"`
	Category  string `json:"category,omitempty"`
	TopK      int    `json:"top_k,omitempty"`
}

type RecommendationsOutput struct {
	Results []SearchHit `json:"results"`
}

type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

type InsightsInput struct {
	Timeframe Timeframe `json:"timeframe,omitempty"`
}

type InsightsOutput struct {
	Insights string `json:"insights"`
}

type ChatInput struct {
	Message string `json:"message"`
}

type ChatOutput struct {
	Reply string `json:"reply"`
}

type DemandForecastInput struct {
	LastTenDays []float64 `json:"last_10_days"`
}

type DemandForecastOutput struct {
	PredictedDemand float64 `json:"predicted_demand"`
}

type BiometricType string

const (
	BiometricFace BiometricType = "face"
	BiometricPalm BiometricType = "palm"
)

type BiometricVerificationInput struct {
	Type      BiometricType `json:"type"`
	ImageData string        `json:"imageData"` // base64 encoded image
}

type BiometricVerificationOutput struct {
	Verified   bool    `json:"verified"`
	UserID     string  `json:"userId,omitempty"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message,omitempty"`
}

type SentimentData struct {
	OverallScore   float64 `json:"overall_score"` // -1.0 to 1.0
	Mood           string  `json:"mood"`
	ActiveShoppers int     `json:"active_shoppers"`
	Timestamp      string  `json:"timestamp"`
}

type EmergencyAlert struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Details  string `json:"details,omitempty"`
	Severity string `json:"severity"`
}

type EmergencyAlertReceipt struct {
	Status  string `json:"status"`
	AlertID string `json:"alert_id"`
}

type ColdChainMetric struct {
	ID          string  `json:"id"`
	Zone        string  `json:"zone"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Status      string  `json:"status"`
	LastUpdated string  `json:"last_updated"`
}

type WasteMetric struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	WeightKg  float64 `json:"weight_kg"`
	FillLevel float64 `json:"fill_level"` // 0-100
	Location  string  `json:"location"`
}

type SalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type DashboardStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	ActiveProducts int     `json:"active_products"`
	LowStockCount  int     `json:"low_stock_count"`
}

type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

type DashboardData struct {
	SalesChart    []SalesPoint   `json:"sales_chart"`
	Stats         DashboardStats `json:"stats"`
	LowStockItems []LowStockItem `json:"low_stock_items"`
}
