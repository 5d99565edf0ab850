// Package httpx provides HTTP response utilities following RFC7807 problem
// details for failures and a timestamped envelope for successes.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps successful responses with request metadata.
type Envelope struct {
	Status    string    `json:"status"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId"`
}

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success wraps data in the response envelope and sends it.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{
		Status:    "success",
		Data:      data,
		Timestamp: time.Now().UTC(),
		RequestID: uuid.NewString(),
	})
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON decodes the request body into target, rejecting unknown fields
// so patches cannot smuggle in attributes the entity does not allow.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
