package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/xavierca1/leadpilot/internal/usecase"
)

var ErrAPIKeyMissing = errors.New("gemini: API key not configured")

// generator is the slice of genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	APIKey  string
	BaseURL string
	// Timeout bounds each call; zero leaves calls unbounded.
	Timeout time.Duration
	// OnCall observes every round trip. kind is "text" or "image".
	OnCall func(kind string, err error, elapsed time.Duration)
}

// Client implements usecase.AIGateway on top of the Gemini API.
type Client struct {
	models  generator
	timeout time.Duration
	onCall  func(kind string, err error, elapsed time.Duration)

	mu      sync.Mutex
	lastErr error
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newClient(gc.Models, opts), nil
}

func newClient(models generator, opts Options) *Client {
	return &Client{models: models, timeout: opts.Timeout, onCall: opts.OnCall}
}

func (c *Client) GenerateText(ctx context.Context, req usecase.TextRequest) (string, error) {
	var cfg *genai.GenerateContentConfig
	if req.Schema != nil {
		cfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   toSchema(req.Schema),
		}
	}

	resp, err := c.generate(ctx, "text", req.Model, req.Prompt, cfg)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func (c *Client) GenerateImage(ctx context.Context, req usecase.ImageRequest) (*usecase.ImageResponse, error) {
	resp, err := c.generate(ctx, "image", req.Model, req.Prompt, nil)
	if err != nil {
		return nil, err
	}
	return toImageResponse(resp), nil
}

func (c *Client) generate(ctx context.Context, kind, model, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if c.onCall != nil {
		c.onCall(kind, err, time.Since(start))
	}
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("gemini: generate %s with %s: %w", kind, model, err)
	}
	return resp, nil
}

// LastCallError is the error of the most recent call, nil after a success or
// before any call.
func (c *Client) LastCallError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func toSchema(s *usecase.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaType(s.Type),
		Description: s.Description,
		Items:       toSchema(s.Items),
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func schemaType(t usecase.SchemaType) genai.Type {
	switch t {
	case usecase.SchemaString:
		return genai.TypeString
	case usecase.SchemaNumber:
		return genai.TypeNumber
	case usecase.SchemaInteger:
		return genai.TypeInteger
	case usecase.SchemaBoolean:
		return genai.TypeBoolean
	case usecase.SchemaArray:
		return genai.TypeArray
	case usecase.SchemaObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

// responseText joins the text parts of the first candidate, skipping
// thought summaries. A response with no candidates yields "".
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

func toImageResponse(resp *genai.GenerateContentResponse) *usecase.ImageResponse {
	out := &usecase.ImageResponse{}
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		var c usecase.Candidate
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part == nil {
					continue
				}
				p := usecase.Part{Text: part.Text}
				if part.InlineData != nil {
					p.InlineData = &usecase.InlineData{
						MIMEType: part.InlineData.MIMEType,
						Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
					}
				}
				c.Parts = append(c.Parts, p)
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
