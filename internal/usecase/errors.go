package usecase

import "errors"

const (
	CodeProductIncomplete = "product_incomplete"
	CodeInvalidInput      = "invalid_input"
	CodeLeadNotFound      = "lead_not_found"
	CodeContentNotFound   = "content_not_found"
	CodeTemplateNotFound  = "template_not_found"
	CodeMailNotConfigured = "mail_not_configured"
)

// DomainError is a failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// DomainErrorCode returns the code of the first DomainError in err's chain.
func DomainErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// TechnicalError wraps an infrastructure failure.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func errLeadNotFound(id string) error {
	return &DomainError{Code: CodeLeadNotFound, Message: "lead " + id + " not found"}
}

func errContentNotFound(id string) error {
	return &DomainError{Code: CodeContentNotFound, Message: "content " + id + " not found"}
}

func errTemplateNotFound(id string) error {
	return &DomainError{Code: CodeTemplateNotFound, Message: "template " + id + " not found"}
}
