package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeneratedContentDefaultsToPost(t *testing.T) {
	c := NewGeneratedContent("h", "b", "https://x.test/aff", "lead-1", "")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ContentTypePost, c.Type)
	assert.Equal(t, "lead-1", c.TargetLeadID)
	assert.Equal(t, "https://x.test/aff", c.AffiliateLink)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestGeneratedContentApply(t *testing.T) {
	c := GeneratedContent{ID: "c1", Headline: "old", Body: "old body"}
	headline := "new"
	img := "data:image/png;base64,AAAA"

	got := c.Apply(ContentPatch{Headline: &headline, ImageURL: &img})

	assert.Equal(t, "new", got.Headline)
	assert.Equal(t, "old body", got.Body)
	assert.Equal(t, img, got.ImageURL)
	assert.Equal(t, "old", c.Headline, "receiver must not change")
	assert.True(t, ContentPatch{}.IsEmpty())
}

func TestGeneratedContentText(t *testing.T) {
	c := GeneratedContent{Headline: "Hook", Body: "Body"}
	assert.Equal(t, "Hook\n\nBody", c.Text())
}

func TestGeneratedContentOverLimit(t *testing.T) {
	assert.False(t, GeneratedContent{Body: strings.Repeat("x", MaxBodyChars)}.OverLimit())
	assert.True(t, GeneratedContent{Body: strings.Repeat("x", MaxBodyChars+1)}.OverLimit())
}

func TestInsertIntoBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		text string
		pos  int
		want string
	}{
		{name: "start", body: "world", text: "hello ", pos: 0, want: "hello world"},
		{name: "middle", body: "ab", text: "-", pos: 1, want: "a-b"},
		{name: "end", body: "ab", text: "!", pos: 2, want: "ab!"},
		{name: "negative appends", body: "ab", text: "!", pos: -1, want: "ab!"},
		{name: "past end appends", body: "ab", text: "!", pos: 99, want: "ab!"},
		{name: "rune offsets", body: "héllo", text: "X", pos: 2, want: "héXllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertIntoBody(tt.body, tt.text, tt.pos))
		})
	}
}
