package usecase

import (
	"context"

	"github.com/xavierca1/leadpilot/internal/entity"
)

type LeadSourcer interface {
	FindPotentialLeads(ctx context.Context, q LeadQuery) []entity.Lead
}

type ContentWriter interface {
	GeneratePersuasivePost(ctx context.Context, product entity.AffiliateProduct, lead entity.Lead) ContentDraft
}

type ImageMaker interface {
	GeneratePostImage(ctx context.Context, topic string) (string, bool)
}

// EventPublisher receives every state change the dashboard makes.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

type ContentMailer interface {
	SendContent(to string, c entity.GeneratedContent) error
}
