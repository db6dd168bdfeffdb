package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
	// Message is the human-readable summary for the response envelope.
	Message() string
}

type APIError struct {
	Msg    string
	Status int
	// Detail carries the raw internal error text, surfaced only as the
	// secondary `error` field of the envelope, never as the message.
	Detail string
}

func (a *APIError) Code() int {
	return a.Status
}

func (a *APIError) Message() string {
	return a.Msg
}

type StructuredError struct {
	Errors map[string][]string
	Status int
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Message() string {
	return "Validation failed"
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError       = NewSimple(404, "Resource not found")
	NoteNotFoundError   = NewSimple(404, "Note not found")
	PolicyNotFoundError = NewSimple(404, "Privacy policy not found")
	EmailNotFoundError  = NewSimple(404, "Email not found")

	EmailTakenError          = NewSimple(400, "Email already exists")
	WrongPasswordError       = NewSimple(400, "Current password is incorrect")
	InvalidResetTokenError   = NewSimple(400, "Invalid or expired reset token")
	CredentialsMismatchError = NewSimple(401, "Invalid email or password")
	InvalidAuthTokenError    = NewSimple(401, "Invalid or expired token")
	UnauthorizedError        = NewSimple(401, "Unauthorized")
	TooManyAttemptsError     = NewSimple(http.StatusTooManyRequests, "Too many attempts, try again later")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Msg: msg}
}

// NewInternal keeps the generic 500 message while carrying the raw error
// text along for the envelope's secondary error field.
func NewInternal(err error) *APIError {
	return &APIError{
		Status: http.StatusInternalServerError,
		Msg:    "Internal server error",
		Detail: err.Error(),
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
