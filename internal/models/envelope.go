package models

// Envelope is the uniform response shape returned by every handler.
// Clients branch on Status instead of sniffing the payload shape.
type Envelope struct {
	Status  string      `json:"status"` // "success" or "error"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OK wraps data in a success envelope
func OK(data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// OKMessage wraps data in a success envelope with a human-readable message
func OKMessage(message string, data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Err builds an error envelope
func Err(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}

// Unwrap returns the payload and whether the envelope carries a success result
func (e Envelope) Unwrap() (interface{}, bool) {
	if e.Status != StatusSuccess {
		return nil, false
	}
	return e.Data, true
}
