package contract

import "notehub/cmd/internal/utils/apierror"

// Envelope is the uniform response shape: every response states success
// explicitly, messages are action-specific, and raw error detail only
// ever appears in the secondary `error` field.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func OK(message string, data any) *Envelope {
	return &Envelope{Success: true, Message: message, Data: data}
}

func Fail(err apierror.ErrorResponse) *Envelope {
	resp := &Envelope{Success: false, Message: err.Message()}

	switch e := err.(type) {
	case *apierror.APIError:
		if e.Detail != "" {
			resp.Error = e.Detail
		}
	case *apierror.StructuredError:
		resp.Error = e.Errors
	}
	return resp
}
