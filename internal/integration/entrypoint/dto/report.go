package dto

// ExportQuery represents the query parameters of the transactions export.
type ExportQuery struct {
	Year int `form:"year"`
}

// AdviceResponse represents the AI financial advice.
type AdviceResponse struct {
	Advice    string `json:"advice"`
	Available bool   `json:"available"`
	Cached    bool   `json:"cached"`
}

// DigestResponse represents the result of sending a digest.
type DigestResponse struct {
	Message     string `json:"message"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}
