package errors

import "strings"

// Errors is a non-empty list of errors. A nil Errors means there were none, so
// callers can compare against nil as they would for a single error.
type Errors interface {
	error
	// Slice returns a copy of the underlying errors.
	Slice() []error
	// Len is always > 0.
	Len() int
}

type errorList []error

func (l errorList) Slice() []error {
	return append([]error(nil), l...)
}

func (l errorList) Len() int {
	return len(l)
}

// Error joins the messages one per line.
func (l errorList) Error() string {
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Append adds err to errs and returns the result. A nil err leaves errs
// unchanged and an err that is itself an Errors is flattened into the list.
// errs is never modified in place.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}

	var l errorList
	if errs != nil {
		l = append(l, errs.Slice()...)
	}
	if multi, ok := err.(Errors); ok {
		return append(l, multi.Slice()...)
	}
	return append(l, err)
}
