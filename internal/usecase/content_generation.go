package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
)

// Sentinel copy returned when generation fails.
const (
	FallbackHeadline = "Error"
	FallbackBody     = "Could not generate content."
)

// ContentDraft is generated copy not yet placed in the store.
type ContentDraft struct {
	Headline      string
	Body          string
	AffiliateLink string
	Type          entity.ContentType
	TargetLeadID  string
	// Degraded is set when Headline and Body are the fallback sentinel.
	Degraded bool
}

func fallbackDraft() ContentDraft {
	return ContentDraft{Headline: FallbackHeadline, Body: FallbackBody, Degraded: true}
}

type ContentGenerationService struct {
	Gateway AIGateway
	Model   string
	Logger  *zap.Logger
}

func NewContentGenerationService(gateway AIGateway, model string, logger *zap.Logger) *ContentGenerationService {
	if model == "" {
		model = DefaultTextModel
	}
	return &ContentGenerationService{Gateway: gateway, Model: model, Logger: logger}
}

// GeneratePersuasivePost writes copy aimed at the lead's pain point. It
// never fails: gateway or parse errors produce the fallback draft.
func (s *ContentGenerationService) GeneratePersuasivePost(ctx context.Context, product entity.AffiliateProduct, lead entity.Lead) ContentDraft {
	prompt, err := BuildPostPrompt(product, lead)
	if err != nil {
		s.Logger.Error("post prompt", zap.Error(err))
		return fallbackDraft()
	}

	text, err := s.Gateway.GenerateText(ctx, TextRequest{
		Model:  s.Model,
		Prompt: prompt,
		Schema: postSchema,
	})
	if err != nil {
		s.Logger.Warn("content generation failed", zap.String("lead_id", lead.ID), zap.Error(err))
		return fallbackDraft()
	}

	draft, err := parsePost(text)
	if err != nil {
		s.Logger.Warn("content generation response rejected", zap.String("lead_id", lead.ID), zap.Error(err))
		return fallbackDraft()
	}

	return ContentDraft{
		Headline:      draft.Headline,
		Body:          draft.Body,
		AffiliateLink: product.Link,
		Type:          entity.ContentTypePost,
		TargetLeadID:  lead.ID,
	}
}
