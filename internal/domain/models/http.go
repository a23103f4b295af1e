package models

// Requests/responses for the signals HTTP endpoints. Defined in domain for
// consistency and reuse.

type AnalyzeRequest struct {
	Symbol     string `query:"symbol" json:"symbol" validate:"required,min=3,max=20"`
	Resolution string `query:"resolution" json:"resolution" default:"60" validate:"oneof=1 5 15 60 240 1D"`
	Limit      int    `query:"limit" json:"limit" default:"100" validate:"gte=25,lte=500"`
}

type CloseTradeRequest struct {
	ExitPrice  float64 `json:"exit_price" validate:"gt=0"`
	Profitable *bool   `json:"profitable" validate:"required"`
}

// AnalyzeResponse wraps the analysis outcome. Status is one of
// "signal", "no_signal" or "paused"; Data is set only for "signal".
type AnalyzeResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    *TradeSignal `json:"data,omitempty"`
}

const (
	AnalyzeStatusSignal   = "signal"
	AnalyzeStatusNoSignal = "no_signal"
	AnalyzeStatusPaused   = "paused"
)

type CloseTradeResponse struct {
	Status      string  `json:"status"`
	Symbol      string  `json:"symbol"`
	SuccessRate float64 `json:"success_rate"`
}

type StatsResponse struct {
	Stats        TradeStats `json:"stats"`
	ActiveTrades int        `json:"active_trades"`
}
