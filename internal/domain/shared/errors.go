package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrChannelNotRegistered = NewDomainError("CHANNEL_NOT_REGISTERED", "Channel is not registered in the channel dimension")
	ErrInvalidDateWindow    = NewDomainError("INVALID_DATE_WINDOW", "Start date must not be after end date")
)
