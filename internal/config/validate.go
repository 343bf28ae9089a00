package config

import (
	"errors"
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Gemini.APIKey == "" {
		errs = append(errs, &ValidationError{Field: "API_KEY", Message: "is required"})
	}
	if c.Gemini.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "GEMINI_TIMEOUT", Message: "must not be negative"})
	}
	if c.Dashboard.LeadBatchSize < 1 || c.Dashboard.LeadBatchSize > 50 {
		errs = append(errs, &ValidationError{Field: "LEAD_BATCH_SIZE", Message: "must be between 1 and 50"})
	}
	if c.Dashboard.DailyLeadTarget < 1 {
		errs = append(errs, &ValidationError{Field: "DAILY_LEAD_TARGET", Message: "must be positive"})
	}
	if c.RateLimit.PerMinute < 1 {
		errs = append(errs, &ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must be positive"})
	}
	if c.Queue.URL != "" {
		if u, err := url.Parse(c.Queue.URL); err != nil || (u.Scheme != "amqp" && u.Scheme != "amqps") {
			errs = append(errs, &ValidationError{Field: "AMQP_URL", Message: "must be an amqp:// or amqps:// URL"})
		}
	}
	if c.Queue.AutoImage && c.Queue.URL == "" {
		errs = append(errs, &ValidationError{Field: "AUTO_IMAGE", Message: "requires AMQP_URL"})
	}
	if c.Mail.Enabled() {
		if c.Mail.From == "" {
			errs = append(errs, &ValidationError{Field: "MAIL_FROM", Message: "is required when MAIL_HOST is set"})
		}
		if c.Mail.Port < 1 || c.Mail.Port > 65535 {
			errs = append(errs, &ValidationError{Field: "MAIL_PORT", Message: "must be between 1 and 65535"})
		}
	}

	return errors.Join(errs...)
}
