package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpilot/internal/entity"
)

func TestBuildLeadPromptClauses(t *testing.T) {
	tests := []struct {
		name        string
		query       LeadQuery
		wantFocus   bool
		wantExclude bool
	}{
		{name: "niche only", query: LeadQuery{Niche: "Keto Diet", Count: 6}},
		{name: "keywords", query: LeadQuery{Niche: "Keto Diet", Keywords: "meal prep", Count: 6}, wantFocus: true},
		{name: "negative keywords", query: LeadQuery{Niche: "Keto Diet", NegativeKeywords: "free", Count: 6}, wantExclude: true},
		{name: "both", query: LeadQuery{Niche: "Keto Diet", Keywords: "meal prep", NegativeKeywords: "free", Count: 6}, wantFocus: true, wantExclude: true},
		{name: "whitespace keywords", query: LeadQuery{Niche: "Keto Diet", Keywords: "   ", Count: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := BuildLeadPrompt(tt.query)
			require.NoError(t, err)

			assert.Contains(t, prompt, `Generate 6 realistic personas`)
			assert.Contains(t, prompt, `the niche: "Keto Diet"`)
			assert.Equal(t, tt.wantFocus, strings.Contains(prompt, `Focus SPECIFICALLY on people mentioning or interested in: "meal prep"`))
			assert.Equal(t, tt.wantExclude, strings.Contains(prompt, `EXCLUDE anyone mentioning or looking for: "free"`))
			if !tt.wantFocus {
				assert.NotContains(t, prompt, "Focus SPECIFICALLY")
			}
			if !tt.wantExclude {
				assert.NotContains(t, prompt, "EXCLUDE")
			}
		})
	}
}

func TestBuildPostPrompt(t *testing.T) {
	p := entity.AffiliateProduct{Name: "FitPlan", Description: "meal planner", Link: "https://x.test/aff"}
	l := entity.Lead{PainPoint: "can't stick to diets"}

	prompt, err := BuildPostPrompt(p, l)
	require.NoError(t, err)

	assert.Contains(t, prompt, `struggling with: "can't stick to diets"`)
	assert.Contains(t, prompt, `"FitPlan" (meal planner)`)
	assert.Contains(t, prompt, `("https://x.test/aff")`)
	assert.Contains(t, prompt, "AIDA")
}

func TestBuildImagePrompt(t *testing.T) {
	prompt, err := BuildImagePrompt("Stop Failing Diets")
	require.NoError(t, err)

	assert.Equal(t, "A professional, high-converting social media image representing: Stop Failing Diets. Bright, clean, eye-catching, no text.", prompt)
}
