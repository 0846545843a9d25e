// Package notify relays toast-style notifications to the browser through the
// HX-Trigger response header, which the frontend listens on to render
// dismissible toasts.
package notify

import (
	"encoding/json"
	"net/http"
)

const triggerHeader = "HX-Trigger"

// Toast is one user-visible notification.
type Toast struct {
	Tone        string `json:"tone"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Push merges the toast into the response's HX-Trigger header, preserving any
// events already queued on the response.
func Push(w http.ResponseWriter, t Toast) {
	events := map[string]any{}
	if existing := w.Header().Get(triggerHeader); existing != "" {
		// best effort; a malformed header is replaced wholesale
		_ = json.Unmarshal([]byte(existing), &events)
	}
	events["storefront:toast"] = t
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set(triggerHeader, string(raw))
}

// Success pushes a success-toned toast.
func Success(w http.ResponseWriter, title, description string) {
	Push(w, Toast{Tone: "success", Title: title, Description: description})
}

// Error pushes an error-toned toast.
func Error(w http.ResponseWriter, title, description string) {
	Push(w, Toast{Tone: "error", Title: title, Description: description})
}
