package usecase

// DomainError is a business-rule violation the API surfaces to the caller
// as a 4xx with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (storage, broker); callers
// see a 500 and the detail stays in the logs.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

var (
	ErrAlreadyRegistered  = &DomainError{Code: "EMAIL_TAKEN", Message: "Email already registered."}
	ErrInvalidCredentials = &DomainError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password."}
	ErrUnknownUser        = &DomainError{Code: "UNKNOWN_USER", Message: "No account exists for this email."}
	ErrLeadNotFound       = &DomainError{Code: "LEAD_NOT_FOUND", Message: "Lead not found."}
	ErrLeadClosed         = &DomainError{Code: "LEAD_CLOSED", Message: "Lead already reached a final decision."}
)
