package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const (
	WelcomeSubject = "Welcome to your Financial Dashboard - your stock market toolkit is ready!"
	digestSubject  = "Market News Summary Today - %s"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #050505; color: #e5e5e5; padding: 24px;">
  <h1 style="color: #fdd458;">Welcome aboard, {{.Name}}</h1>
  <p>{{.Intro}}</p>
  <p>Here is what you can do right away:</p>
  <ul>
    <li>Build a watchlist of the companies you follow</li>
    <li>Search any listed stock with instant lookup</li>
    <li>Get a daily digest of news about your watchlist</li>
  </ul>
  <p><a href="{{.DashboardURL}}" style="color: #fdd458;">Open your dashboard</a></p>
</body>
</html>`))

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #050505; color: #e5e5e5; padding: 24px;">
  <h1 style="color: #fdd458;">Market News Summary</h1>
  <p style="color: #9ca3af;">{{.Date}}</p>
  {{range .Paragraphs}}<p>{{.}}</p>
  {{end}}
  <h2>Articles</h2>
  <ul>
  {{range .Articles}}  <li><a href="{{.URL}}" style="color: #fdd458;">{{.Headline}}</a> <span style="color: #9ca3af;">{{.Source}}{{if .Related}} · {{.Related}}{{end}}</span></li>
  {{end}}</ul>
</body>
</html>`))

type WelcomeData struct {
	Email        string
	Name         string
	Intro        string
	DashboardURL string
}

type DigestArticle struct {
	Headline string
	URL      string
	Source   string
	Related  string
}

type DigestData struct {
	Email    string
	Name     string
	Date     string
	Summary  string
	Articles []DigestArticle
}

func RenderWelcome(data WelcomeData) (Message, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("rendering welcome mail: %w", err)
	}

	return Message{
		To:      data.Email,
		Subject: WelcomeSubject,
		Text:    fmt.Sprintf("Welcome aboard, %s\n\n%s\n", data.Name, data.Intro),
		HTML:    buf.String(),
	}, nil
}

func RenderDigest(data DigestData) (Message, error) {
	paragraphs := splitParagraphs(data.Summary)

	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, struct {
		Date       string
		Paragraphs []string
		Articles   []DigestArticle
	}{data.Date, paragraphs, data.Articles})
	if err != nil {
		return Message{}, fmt.Errorf("rendering digest mail: %w", err)
	}

	var text strings.Builder
	text.WriteString(data.Date + "\n\n")
	text.WriteString(strings.Join(paragraphs, "\n\n"))
	text.WriteString("\n\n")
	for _, a := range data.Articles {
		text.WriteString(fmt.Sprintf("- %s (%s)\n", a.Headline, a.URL))
	}

	return Message{
		To:      data.Email,
		Subject: fmt.Sprintf(digestSubject, data.Date),
		Text:    text.String(),
		HTML:    buf.String(),
	}, nil
}

func splitParagraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
