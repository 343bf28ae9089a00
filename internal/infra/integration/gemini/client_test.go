package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/xavierca1/leadpilot/internal/usecase"
)

// MockModels
type MockModels struct {
	mock.Mock
}

func (m *MockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, model, contents, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: "model", Parts: parts},
	}}}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestToSchema(t *testing.T) {
	in := &usecase.Schema{
		Type: usecase.SchemaArray,
		Items: &usecase.Schema{
			Type: usecase.SchemaObject,
			Properties: map[string]*usecase.Schema{
				"name":  {Type: usecase.SchemaString, Description: "Full name"},
				"score": {Type: usecase.SchemaNumber},
			},
			Required: []string{"name"},
		},
	}

	got := toSchema(in)

	require.NotNil(t, got.Items)
	assert.Equal(t, genai.TypeArray, got.Type)
	assert.Equal(t, genai.TypeObject, got.Items.Type)
	assert.Equal(t, genai.TypeString, got.Items.Properties["name"].Type)
	assert.Equal(t, "Full name", got.Items.Properties["name"].Description)
	assert.Equal(t, genai.TypeNumber, got.Items.Properties["score"].Type)
	assert.Equal(t, []string{"name"}, got.Items.Required)
	assert.Nil(t, toSchema(nil))
}

func TestResponseText(t *testing.T) {
	resp := textResponse(
		&genai.Part{Text: "thinking...", Thought: true},
		&genai.Part{Text: `[{"name":`},
		&genai.Part{Text: `"Jane"}]`},
	)

	assert.Equal(t, `[{"name":"Jane"}]`, responseText(resp))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(nil))
}

func TestToImageResponseEncodesInlineData(t *testing.T) {
	resp := textResponse(
		&genai.Part{Text: "here"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}},
	)

	got := toImageResponse(resp)

	require.Len(t, got.Candidates, 1)
	require.Len(t, got.Candidates[0].Parts, 2)
	assert.Nil(t, got.Candidates[0].Parts[0].InlineData)
	assert.Equal(t, "image/png", got.Candidates[0].Parts[1].InlineData.MIMEType)
	assert.Equal(t, "iVBORw==", got.Candidates[0].Parts[1].InlineData.Data)
}

func TestGenerateTextSendsSchema(t *testing.T) {
	models := new(MockModels)
	models.On("GenerateContent", mock.Anything, "gemini-2.5-flash", mock.Anything, mock.MatchedBy(func(cfg *genai.GenerateContentConfig) bool {
		return cfg != nil && cfg.ResponseMIMEType == "application/json" && cfg.ResponseSchema.Type == genai.TypeObject
	})).Return(textResponse(&genai.Part{Text: `{"headline":"H","body":"B"}`}), nil)

	var observed []string
	c := newClient(models, Options{OnCall: func(kind string, err error, _ time.Duration) {
		observed = append(observed, kind)
	}})

	text, err := c.GenerateText(context.Background(), usecase.TextRequest{
		Model:  "gemini-2.5-flash",
		Prompt: "write",
		Schema: &usecase.Schema{Type: usecase.SchemaObject},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"headline":"H","body":"B"}`, text)
	assert.Equal(t, []string{"text"}, observed)
	models.AssertExpectations(t)
}

func TestGenerateTextWithoutSchemaSendsNoConfig(t *testing.T) {
	models := new(MockModels)
	models.On("GenerateContent", mock.Anything, "m", mock.Anything, (*genai.GenerateContentConfig)(nil)).
		Return(textResponse(&genai.Part{Text: "plain"}), nil)

	c := newClient(models, Options{})
	text, err := c.GenerateText(context.Background(), usecase.TextRequest{Model: "m", Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "plain", text)
}

func TestGenerateImageWrapsError(t *testing.T) {
	models := new(MockModels)
	models.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("429 resource exhausted"))

	c := newClient(models, Options{})
	_, err := c.GenerateImage(context.Background(), usecase.ImageRequest{Model: "gemini-2.5-flash-image", Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate image with gemini-2.5-flash-image")
}

func TestGenerateAppliesTimeout(t *testing.T) {
	models := new(MockModels)
	models.On("GenerateContent", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything, mock.Anything).Return(textResponse(), nil)

	c := newClient(models, Options{Timeout: time.Second})
	_, err := c.GenerateText(context.Background(), usecase.TextRequest{Model: "m", Prompt: "p"})

	require.NoError(t, err)
	models.AssertExpectations(t)
}

func TestLastCallErrorFollowsLatestCall(t *testing.T) {
	models := new(MockModels)
	models.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("503 unavailable")).Once()
	models.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(&genai.Part{Text: "ok"}), nil).Once()

	c := newClient(models, Options{})
	assert.NoError(t, c.LastCallError(), "no call yet")

	_, err := c.GenerateText(context.Background(), usecase.TextRequest{Model: "m", Prompt: "p"})
	require.Error(t, err)
	assert.Error(t, c.LastCallError())

	_, err = c.GenerateText(context.Background(), usecase.TextRequest{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.NoError(t, c.LastCallError())
}
