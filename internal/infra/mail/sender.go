package mail

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/leadpilot/internal/entity"
)

//go:embed templates/*.html
var templateFiles embed.FS

var contentTemplate = template.Must(template.ParseFS(templateFiles, "templates/content.html"))

type contentEmailData struct {
	Headline      string
	Paragraphs    []string
	AffiliateLink string
	HasImage      bool
}

// EmailSender delivers content pieces over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	send func(m *gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

// SendContent mails the copy-ready text of c, with its image attached when
// it has one.
func (s *EmailSender) SendContent(to string, c entity.GeneratedContent) error {
	m, err := s.buildMessage(to, c)
	if err != nil {
		return err
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("send content email via SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildMessage(to string, c entity.GeneratedContent) (*gomail.Message, error) {
	img, hasImage := decodeDataURI(c.ImageURL)

	html, err := renderContent(c, hasImage)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subjectFor(c))
	m.SetBody("text/plain", c.Text())
	m.AddAlternative("text/html", html)

	if hasImage {
		m.Attach("post-image"+img.extension(),
			gomail.SetHeader(map[string][]string{"Content-Type": {img.mimeType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(img.data)
				return err
			}),
		)
	}
	return m, nil
}

func renderContent(c entity.GeneratedContent, hasImage bool) (string, error) {
	data := contentEmailData{
		Headline:      c.Headline,
		Paragraphs:    paragraphs(c.Body),
		AffiliateLink: c.AffiliateLink,
		HasImage:      hasImage,
	}

	var body bytes.Buffer
	if err := contentTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render content email: %w", err)
	}
	return body.String(), nil
}

func subjectFor(c entity.GeneratedContent) string {
	if strings.TrimSpace(c.Headline) == "" {
		return "Your content"
	}
	return c.Headline
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(body, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type inlineImage struct {
	mimeType string
	data     []byte
}

func (i inlineImage) extension() string {
	switch i.mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

var errNotDataURI = errors.New("not a base64 data URI")

// decodeDataURI understands "data:<mime>;base64,<payload>" only.
func decodeDataURI(uri string) (inlineImage, bool) {
	img, err := parseDataURI(uri)
	return img, err == nil
}

func parseDataURI(uri string) (inlineImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return inlineImage{}, errNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return inlineImage{}, errNotDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return inlineImage{}, errNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return inlineImage{}, err
	}
	return inlineImage{mimeType: mimeType, data: data}, nil
}
