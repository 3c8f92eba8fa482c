package response

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ShortLinkResponse struct {
	Code          string     `json:"code"`
	ShortURL      string     `json:"short_url"`
	LongURL       string     `json:"long_url"`
	IsCustom      bool       `json:"is_custom"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Clicks        int64      `json:"clicks"`
	LastClickedAt *time.Time `json:"last_clicked_at,omitempty"`
}

type ClickResponse struct {
	ClickedAt time.Time         `json:"clicked_at"`
	UserAgent string            `json:"user_agent,omitempty"`
	Referer   string            `json:"referer,omitempty"`
	IP        string            `json:"ip,omitempty"`
	Location  *LocationResponse `json:"location,omitempty"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

type StatsResponse struct {
	Code          string           `json:"code"`
	TotalClicks   int64            `json:"total_clicks"`
	LastClickedAt *time.Time       `json:"last_clicked_at,omitempty"`
	UniqueIPCount int64            `json:"unique_ip_count"`
	DailyStats    map[string]int64 `json:"daily_stats"`
	RecentClicks  []ClickResponse  `json:"recent_clicks"`
}

type TrackResponse struct {
	Status string `json:"status"`
}
