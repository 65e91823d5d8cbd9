package apitypes

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MonitorStatusResponse reports how many viewers are attached to the log stream.
type MonitorStatusResponse struct {
	Viewers    int `json:"viewers"`
	QueueLimit int `json:"queueLimit"`
}
