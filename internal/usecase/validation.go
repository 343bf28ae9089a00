package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/leadpilot/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when an input has one or more bad fields.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

const (
	maxProductNameLen = 200
	maxKeywordsLen    = 500
)

// ValidateProduct checks the shape of the product form. Missing name or
// niche is allowed here; scanning is what requires them.
func ValidateProduct(p entity.AffiliateProduct) ValidationErrors {
	var errs ValidationErrors

	if utf8.RuneCountInString(p.Name) > maxProductNameLen {
		errs = append(errs, ValidationError{"name", fmt.Sprintf("must not exceed %d characters", maxProductNameLen)})
	}

	if link := strings.TrimSpace(p.Link); link != "" && !isHTTPURL(link) {
		errs = append(errs, ValidationError{"link", "must be an absolute http(s) URL"})
	}

	if utf8.RuneCountInString(p.Keywords) > maxKeywordsLen {
		errs = append(errs, ValidationError{"keywords", fmt.Sprintf("must not exceed %d characters", maxKeywordsLen)})
	}
	if utf8.RuneCountInString(p.NegativeKeywords) > maxKeywordsLen {
		errs = append(errs, ValidationError{"negative_keywords", fmt.Sprintf("must not exceed %d characters", maxKeywordsLen)})
	}

	return errs
}

func ValidateRecipient(to string) ValidationErrors {
	if strings.TrimSpace(to) == "" {
		return ValidationErrors{{"to", "is required"}}
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return ValidationErrors{{"to", "is invalid"}}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
