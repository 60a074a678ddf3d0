package status

import (
	"encoding/json"
	"net/http"
	"sync"
)

var s = newEmptyStatus()

// Status is the root level object containing all sections.
type Status struct {
	m        sync.Mutex
	Sections map[string]*Section
}

func newEmptyStatus() *Status {
	return &Status{
		Sections: make(map[string]*Section),
	}
}

// MarshalJSON allows for go-routine safe access to Sections.
func (s *Status) MarshalJSON() ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	// to avoid recursive call into MarshalJSON (and the subsequent deadlock),
	// create a temporary type to mask the MarshalJSON method
	type tmp Status
	return json.Marshal((*tmp)(s))
}

// Get returns the *Status object
func Get() *Status {
	return s
}

// HandlerJSON serves every registered section as JSON, wrapped in a "status" object.
func HandlerJSON(w http.ResponseWriter, r *http.Request) {
	type statusResponse struct {
		Status *Status `json:"status"`
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&statusResponse{Status: s})
}
