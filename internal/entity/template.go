package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const templateNameMaxRunes = 30

type ContentTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateName derives a template's display name from a headline: the
// headline itself up to 30 characters, otherwise the first 30 plus "...".
func TemplateName(headline string) string {
	runes := []rune(headline)
	if len(runes) <= templateNameMaxRunes {
		return headline
	}
	return string(runes[:templateNameMaxRunes]) + "..."
}

// NewTemplateFromContent snapshots the text of c. The template keeps no
// reference to the content it came from.
func NewTemplateFromContent(c GeneratedContent) ContentTemplate {
	return ContentTemplate{
		ID:        uuid.New().String(),
		Name:      TemplateName(c.Headline),
		Headline:  c.Headline,
		Body:      c.Body,
		CreatedAt: time.Now(),
	}
}

// Matches reports whether term appears, case-insensitively, in the name,
// headline or body. An empty term matches everything.
func (t ContentTemplate) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Headline), term) ||
		strings.Contains(strings.ToLower(t.Body), term)
}
