package entity

import (
	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusDiscarded LeadStatus = "discarded"
)

// Intent bands shown on the dashboard.
const (
	HighIntentThreshold   = 75
	MediumIntentThreshold = 40
)

type IntentBand string

const (
	IntentHigh   IntentBand = "high"
	IntentMedium IntentBand = "medium"
	IntentLow    IntentBand = "low"
)

type Lead struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	SourceGroup            string     `json:"source_group"`
	SourceLink             string     `json:"source_link,omitempty"`
	PainPoint              string     `json:"pain_point"`
	IntentScore            float64    `json:"intent_score"` // 0-100, upper bound not enforced
	Status                 LeadStatus `json:"status"`
	RelevantProductFeature string     `json:"relevant_product_feature,omitempty"`
}

// NewLead stamps a sourced persona with a fresh id and the "new" status.
func NewLead(name, sourceGroup, sourceLink, painPoint string, intentScore float64, feature string) Lead {
	return Lead{
		ID:                     uuid.New().String(),
		Name:                   name,
		SourceGroup:            sourceGroup,
		SourceLink:             sourceLink,
		PainPoint:              painPoint,
		IntentScore:            intentScore,
		Status:                 LeadStatusNew,
		RelevantProductFeature: feature,
	}
}

func (l Lead) IntentBand() IntentBand {
	switch {
	case l.IntentScore > HighIntentThreshold:
		return IntentHigh
	case l.IntentScore >= MediumIntentThreshold:
		return IntentMedium
	default:
		return IntentLow
	}
}
