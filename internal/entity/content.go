package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeCaption ContentType = "caption"
	ContentTypeDM      ContentType = "dm"
)

// MaxBodyChars is where the editor starts flagging a body as too long.
const MaxBodyChars = 2000

type GeneratedContent struct {
	ID            string      `json:"id"`
	TargetLeadID  string      `json:"target_lead_id,omitempty"`
	Headline      string      `json:"headline"`
	Body          string      `json:"body"`
	ImageURL      string      `json:"image_url,omitempty"`
	AffiliateLink string      `json:"affiliate_link"`
	Type          ContentType `json:"type"`
	CreatedAt     time.Time   `json:"created_at"`
	Degraded      bool        `json:"degraded,omitempty"`
}

// ContentPatch carries the fields an edit may overwrite; nil means untouched.
type ContentPatch struct {
	Headline *string `json:"headline,omitempty"`
	Body     *string `json:"body,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (p ContentPatch) IsEmpty() bool {
	return p.Headline == nil && p.Body == nil && p.ImageURL == nil
}

func NewGeneratedContent(headline, body, affiliateLink, targetLeadID string, ctype ContentType) GeneratedContent {
	if ctype == "" {
		ctype = ContentTypePost
	}
	return GeneratedContent{
		ID:            uuid.New().String(),
		TargetLeadID:  targetLeadID,
		Headline:      headline,
		Body:          body,
		AffiliateLink: affiliateLink,
		Type:          ctype,
		CreatedAt:     time.Now(),
	}
}

// Apply returns a copy of c with the patch merged in.
func (c GeneratedContent) Apply(p ContentPatch) GeneratedContent {
	if p.Headline != nil {
		c.Headline = *p.Headline
	}
	if p.Body != nil {
		c.Body = *p.Body
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	return c
}

// Text is the copy-ready form of the post.
func (c GeneratedContent) Text() string {
	return c.Headline + "\n\n" + c.Body
}

func (c GeneratedContent) BodyChars() int {
	return utf8.RuneCountInString(c.Body)
}

func (c GeneratedContent) OverLimit() bool {
	return c.BodyChars() > MaxBodyChars
}

// InsertIntoBody places text at the given rune offset of the body. Offsets
// outside the body (including negative ones) append at the end.
func InsertIntoBody(body, text string, pos int) string {
	runes := []rune(body)
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	out := make([]rune, 0, len(runes)+utf8.RuneCountInString(text))
	out = append(out, runes[:pos]...)
	out = append(out, []rune(text)...)
	out = append(out, runes[pos:]...)
	return string(out)
}
