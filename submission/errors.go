package submission

import "net/http"

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindSecurity
	KindNotFound
	KindValidation
	KindDelivery
	KindInternal
)

var kindNames = map[Kind]string{
	KindInvalid:    "invalid",
	KindSecurity:   "security",
	KindNotFound:   "not_found",
	KindValidation: "validation",
	KindDelivery:   "delivery",
	KindInternal:   "internal",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Error is a terminal pipeline failure. Message is shown to the submitter;
// Err is for the logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalid:
		return http.StatusBadRequest
	case KindSecurity:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindDelivery, KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func fail(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
