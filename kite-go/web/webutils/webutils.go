package webutils

import (
	"encoding/json"
	"net/http"
)

// ReturnJSON writes v as the JSON body of a response with the given status code.
func ReturnJSON(w http.ResponseWriter, code int, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf)
}
