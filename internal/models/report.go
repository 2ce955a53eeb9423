package models

// CountEntry pairs a key with the number of times it was observed.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Report summarises the traffic observed during a single run.
type Report struct {
	TotalRequests int          `json:"total_requests"`
	UniqueIPs     int          `json:"unique_ips"`
	TopIPs        []CountEntry `json:"top_ips"`
	BotRequests   int          `json:"bot_requests"`
	BotShare      float64      `json:"bot_share"`
	Methods       []CountEntry `json:"methods"`
	TopPaths      []CountEntry `json:"top_paths"`
	StatusCodes   []CountEntry `json:"status_codes"`
	Peak          Bucket       `json:"peak"`
}
