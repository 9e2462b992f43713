package response

import (
	"errors"
)

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Envelope is the body shape shared by every JSON endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func SuccessWithCount(message string, data interface{}, count int) Envelope {
	return Envelope{Success: true, Message: message, Data: data, Count: &count}
}

func Failure(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
