package types

// APIError is the error body every failed request returns.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse acknowledges mutations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}
