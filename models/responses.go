package models

// Envelope is the uniform response body of the HTTP boundary. Success
// responses carry Error=false and an optional Data payload; failures carry
// Error=true and a taxonomy-appropriate human-readable Message only.
type Envelope struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}
