package usecase

import "github.com/xavierca1/leadpilot/internal/entity"

type QualifyLeadOutput struct {
	Lead    entity.Lead              `json:"lead"`
	Content *entity.GeneratedContent `json:"content"`
}

type GenerateImageOutput struct {
	Content   entity.GeneratedContent `json:"content"`
	Generated bool                    `json:"generated"`
}

type SaveTemplateInput struct {
	ContentID string  `json:"content_id"`
	Headline  *string `json:"headline,omitempty"`
	Body      *string `json:"body,omitempty"`
}

type IntentDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type Summary struct {
	DailyTarget        int                `json:"daily_target"`
	NewLeads           int                `json:"new_leads"`
	QualifiedLeads     int                `json:"qualified_leads"`
	ContentPieces      int                `json:"content_pieces"`
	Templates          int                `json:"templates"`
	IntentDistribution IntentDistribution `json:"intent_distribution"`
	RecentLeads        []entity.Lead      `json:"recent_leads"`
}
