package main

import (
	"encoding/json"
	"net/http"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/logging"
	"gidiparts.ng/gidiparts-web/internal/notify"
)

type envelope struct {
	Data  any            `json:"data,omitempty"`
	Error *errorEnvelope `json:"error,omitempty"`
}

type errorEnvelope struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// writeError maps an error to its HTTP status, logs the cause, and pushes a
// toast so the client can surface the failure.
func (app *application) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.As(err)
	if appErr == nil {
		appErr = apperrors.Wrap(apperrors.CodeInternal, err, "")
	}

	meta := apperrors.MetadataFor(appErr.Code())
	message := appErr.Message()
	if message == "" {
		message = meta.PublicMessage
	}

	log := logging.FromContext(r.Context())
	evt := log.Warn()
	if meta.HTTPStatus >= 500 {
		evt = log.Error()
	}
	evt.Err(err).
		Str("code", string(appErr.Code())).
		Int("status", meta.HTTPStatus).
		Msg("request failed")

	notify.Error(w, "Something went wrong", message)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(envelope{Error: &errorEnvelope{
		Code:      string(appErr.Code()),
		Message:   message,
		Details:   appErr.Details(),
		Retryable: meta.Retryable,
	}})
}

// readJSON decodes a request body, capping it at 1 MiB.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, "invalid request body")
	}
	return nil
}
