package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
)

const DefaultTextModel = "gemini-2.5-flash"

type LeadSourcingService struct {
	Gateway AIGateway
	Model   string
	Logger  *zap.Logger
}

func NewLeadSourcingService(gateway AIGateway, model string, logger *zap.Logger) *LeadSourcingService {
	if model == "" {
		model = DefaultTextModel
	}
	return &LeadSourcingService{Gateway: gateway, Model: model, Logger: logger}
}

// FindPotentialLeads asks the gateway for personas matching q. Any failure
// yields an empty slice: to the caller an outage looks like "nothing found".
func (s *LeadSourcingService) FindPotentialLeads(ctx context.Context, q LeadQuery) []entity.Lead {
	prompt, err := BuildLeadPrompt(q)
	if err != nil {
		s.Logger.Error("lead prompt", zap.Error(err))
		return []entity.Lead{}
	}

	text, err := s.Gateway.GenerateText(ctx, TextRequest{
		Model:  s.Model,
		Prompt: prompt,
		Schema: leadListSchema,
	})
	if err != nil {
		s.Logger.Warn("lead sourcing failed", zap.String("niche", q.Niche), zap.Error(err))
		return []entity.Lead{}
	}

	raw, err := parseLeads(text)
	if err != nil {
		s.Logger.Warn("lead sourcing response rejected", zap.String("niche", q.Niche), zap.Error(err))
		return []entity.Lead{}
	}

	leads := make([]entity.Lead, 0, len(raw))
	for _, r := range raw {
		leads = append(leads, entity.NewLead(r.Name, r.SourceGroup, r.SourceLink, r.PainPoint, *r.IntentScore, r.RelevantProductFeature))
	}

	s.Logger.Info("leads sourced", zap.String("niche", q.Niche), zap.Int("count", len(leads)))
	return leads
}
