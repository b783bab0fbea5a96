package dto

// StatsQuery scopes an aggregate query; both bounds must be given together,
// RFC3339 timestamps.
type StatsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type AddReadingTimeRequest struct {
	Seconds int64 `json:"seconds" binding:"required"`
}

type SetPrivacyRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type PrivacyResponse struct {
	Enabled bool `json:"enabled"`
}
