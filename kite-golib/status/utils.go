package status

import (
	"net/http"
	"strconv"
)

// RecordStatusCode wraps an HTTP handler and counts the status codes of its
// responses in code. A handler that writes nothing is counted as a 200.
func RecordStatusCode(wrapped http.HandlerFunc, code *Breakdown) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cw := &codeWriter{ResponseWriter: w}
		wrapped(cw, r)
		if cw.code == 0 {
			cw.code = http.StatusOK
		}
		code.HitAndAdd(strconv.Itoa(cw.code))
	}
}

// codeWriter remembers the first status code written through it.
type codeWriter struct {
	http.ResponseWriter
	code int
}

func (w *codeWriter) Write(body []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	return w.ResponseWriter.Write(body)
}

func (w *codeWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}
