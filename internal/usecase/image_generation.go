package usecase

import (
	"context"

	"go.uber.org/zap"
)

const DefaultImageModel = "gemini-2.5-flash-image"

type ImageGenerationService struct {
	Gateway AIGateway
	Model   string
	Logger  *zap.Logger
}

func NewImageGenerationService(gateway AIGateway, model string, logger *zap.Logger) *ImageGenerationService {
	if model == "" {
		model = DefaultImageModel
	}
	return &ImageGenerationService{Gateway: gateway, Model: model, Logger: logger}
}

// GeneratePostImage returns a data URI for an image illustrating topic.
// ok is false when the gateway fails or sends back no inline image.
func (s *ImageGenerationService) GeneratePostImage(ctx context.Context, topic string) (dataURI string, ok bool) {
	prompt, err := BuildImagePrompt(topic)
	if err != nil {
		s.Logger.Error("image prompt", zap.Error(err))
		return "", false
	}

	resp, err := s.Gateway.GenerateImage(ctx, ImageRequest{Model: s.Model, Prompt: prompt})
	if err != nil {
		s.Logger.Warn("image generation failed", zap.Error(err))
		return "", false
	}

	uri, found := firstInlineImage(resp)
	if !found {
		s.Logger.Warn("image generation returned no inline data")
	}
	return uri, found
}

func firstInlineImage(resp *ImageResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	for _, part := range resp.Candidates[0].Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return "data:" + part.InlineData.MIMEType + ";base64," + part.InlineData.Data, true
		}
	}
	return "", false
}
