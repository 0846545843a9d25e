package middleware

import "net/http"

// ResponseRecorder wraps a ResponseWriter to capture the status code and
// bytes written, and to run a hook just before the first write so headers
// and cookies can still be set.
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers fn to run once, right before headers are flushed.
func (r *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	r.beforeWrite = fn
}

func (r *ResponseRecorder) WriteHeader(status int) {
	if !r.wrote {
		r.wrote = true
		if r.beforeWrite != nil {
			r.beforeWrite(r.ResponseWriter)
		}
		r.status = status
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *ResponseRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *ResponseRecorder) Status() int { return r.status }

func (r *ResponseRecorder) Bytes() int { return r.bytes }

func (r *ResponseRecorder) Wrote() bool { return r.wrote }
