package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse marks gateway text that does not fit the declared schema.
var ErrMalformedResponse = errors.New("malformed gateway response")

type sourcedLead struct {
	Name                   string   `json:"name"`
	SourceGroup            string   `json:"sourceGroup"`
	SourceLink             string   `json:"sourceLink"`
	PainPoint              string   `json:"painPoint"`
	IntentScore            *float64 `json:"intentScore"`
	RelevantProductFeature string   `json:"relevantProductFeature"`
}

func (l sourcedLead) validate() error {
	switch {
	case strings.TrimSpace(l.Name) == "":
		return errors.New("name is required")
	case strings.TrimSpace(l.SourceGroup) == "":
		return errors.New("sourceGroup is required")
	case strings.TrimSpace(l.PainPoint) == "":
		return errors.New("painPoint is required")
	case l.IntentScore == nil:
		return errors.New("intentScore is required")
	case *l.IntentScore < 0:
		return errors.New("intentScore must not be negative")
	}
	return nil
}

// parseLeads decodes a lead list. Empty text is an empty list; any record
// failing validation rejects the whole batch.
func parseLeads(text string) ([]sourcedLead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var raw []sourcedLead
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for i, l := range raw {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("%w: lead %d: %v", ErrMalformedResponse, i, err)
		}
	}
	return raw, nil
}

type postDraft struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// parsePost decodes a {headline, body} object. Missing fields decode as
// empty strings; deciding what to do with them is up to the caller.
func parsePost(text string) (postDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "{}"
	}

	var draft postDraft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return postDraft{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return draft, nil
}
