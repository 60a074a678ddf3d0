package webutils

import (
	"fmt"
	"net/http"
)

// ErrorBody is the JSON body of a failed request. Line and Column are set
// when the error points into a submitted document.
type ErrorBody struct {
	Error  string `json:"error"`
	Line   *int   `json:"line,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// ReportError responds with the formatted message and the given status code.
func ReportError(w http.ResponseWriter, code int, s string, args ...interface{}) {
	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}
	ReturnJSON(w, code, ErrorBody{Error: s})
}

// ReportBadRequest reports a StatusBadRequest error
func ReportBadRequest(w http.ResponseWriter, s string, args ...interface{}) {
	ReportError(w, http.StatusBadRequest, s, args...)
}

// ReportPosError reports an error at a line and column of the submitted document.
func ReportPosError(w http.ResponseWriter, code int, msg string, line, column int) {
	ReturnJSON(w, code, ErrorBody{
		Error:  msg,
		Line:   &line,
		Column: &column,
	})
}
