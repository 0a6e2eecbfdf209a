package handlers

// SelectLocationRequest chooses the place the dashboard follows. Name and
// display name are optional; coordinates are validated.
type SelectLocationRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country"`
	State       string  `json:"state"`
	Lat         float64 `json:"lat" binding:"required" validate:"required,latitude"`
	Lon         float64 `json:"lon" binding:"required" validate:"required,longitude"`
}

// SearchQueryRequest feeds the debounced search controller.
type SearchQueryRequest struct {
	Query string `json:"query"`
}

// SearchLocationsRequest is the direct (non-debounced) search endpoint input.
type SearchLocationsRequest struct {
	Query string `form:"q" json:"q"`
	Limit int    `form:"limit" json:"limit" validate:"omitempty,min=1,max=10"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
