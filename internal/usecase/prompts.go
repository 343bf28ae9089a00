package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/xavierca1/leadpilot/internal/entity"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

var prompts = template.Must(template.ParseFS(promptFiles, "prompts/*.tmpl"))

// LeadQuery narrows down which personas the gateway should invent.
type LeadQuery struct {
	Niche            string
	Keywords         string
	NegativeKeywords string
	Count            int
}

func renderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// BuildLeadPrompt adds an inclusion clause for keywords and an exclusion
// clause for negative keywords, each only when set.
func BuildLeadPrompt(q LeadQuery) (string, error) {
	return renderPrompt("lead_sourcing.tmpl", struct {
		Count            int
		Niche            string
		Keywords         string
		NegativeKeywords string
	}{
		Count:            q.Count,
		Niche:            q.Niche,
		Keywords:         strings.TrimSpace(q.Keywords),
		NegativeKeywords: strings.TrimSpace(q.NegativeKeywords),
	})
}

func BuildPostPrompt(p entity.AffiliateProduct, l entity.Lead) (string, error) {
	return renderPrompt("persuasive_post.tmpl", struct {
		PainPoint          string
		ProductName        string
		ProductDescription string
		Link               string
	}{
		PainPoint:          l.PainPoint,
		ProductName:        p.Name,
		ProductDescription: p.Description,
		Link:               p.Link,
	})
}

func BuildImagePrompt(topic string) (string, error) {
	return renderPrompt("post_image.tmpl", struct{ Topic string }{Topic: topic})
}

// leadListSchema is the shape of a lead sourcing response.
var leadListSchema = &Schema{
	Type: SchemaArray,
	Items: &Schema{
		Type: SchemaObject,
		Properties: map[string]*Schema{
			"name":                   {Type: SchemaString, Description: "Full name of the user"},
			"sourceGroup":            {Type: SchemaString, Description: "Name of the Facebook Group they were found in"},
			"sourceLink":             {Type: SchemaString, Description: "A realistic URL to the specific Facebook post or comment"},
			"painPoint":              {Type: SchemaString, Description: "The specific problem or struggle they mentioned"},
			"intentScore":            {Type: SchemaNumber, Description: "Score 0-100 indicating likelihood to buy"},
			"relevantProductFeature": {Type: SchemaString, Description: "What feature of a product would solve their issue"},
		},
		Required: []string{"name", "sourceGroup", "painPoint", "intentScore", "sourceLink"},
	},
}

var postSchema = &Schema{
	Type: SchemaObject,
	Properties: map[string]*Schema{
		"headline": {Type: SchemaString},
		"body":     {Type: SchemaString},
	},
}
