package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

const (
	// Endpoint is the endpoint load balancers check
	Endpoint = "/health"
	// ReadyEndpoint is the endpoint to use when registering ReadyHandler
	ReadyEndpoint = "/ready"
)

// Status on an endpoint
type Status int

// Status of an endpoint can be None, OK, or Unreachable.
const (
	StatusNone Status = iota
	StatusOK
	StatusUnreachable
)

// String converts Status to printable string.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "N/A"
	case StatusOK:
		return "OK"
	case StatusUnreachable:
		return "Unreachable"
	}
	return ""
}

// Response for a status check
type Response struct {
	StatusCode Status `json:"status_code"`
	Message    string `json:"message"`
}

var ready int32

// SetReady marks the process as ready to serve. Should be called right before
// the main loop starts.
func SetReady() {
	atomic.StoreInt32(&ready, 1)
}

// Handler is the default handler for health, which returns
// an OK status as long as the process can respond at all.
func Handler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, Response{StatusCode: StatusOK})
}

// ReadyHandler responds with StatusOK once SetReady has been called and with
// StatusUnreachable before.
func ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&ready) == 0 {
		respond(w, http.StatusServiceUnavailable, Response{
			StatusCode: StatusUnreachable,
			Message:    "not ready",
		})
		return
	}
	respond(w, http.StatusOK, Response{StatusCode: StatusOK, Message: "ready"})
}

func respond(w http.ResponseWriter, code int, status Response) {
	buf, err := json.Marshal(&status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf)
}
