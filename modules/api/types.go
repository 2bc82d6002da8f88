package api

// ErrorResponse is the JSON body for HTTP-level failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the JSON body for GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// AuthRequest is the JSON body for register and login.
type AuthRequest struct {
	Nick     string `json:"nick"`
	Password string `json:"password"`
}

// ClearHistoryRequest is the JSON body for POST /api/clear_history.
type ClearHistoryRequest struct {
	Room string `json:"room"`
}

// ConfigServer is one selectable server entry in the /config payload.
type ConfigServer struct {
	Name  string `json:"name"`
	WSURL string `json:"ws_url"`
}
