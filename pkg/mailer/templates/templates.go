// Package templates renders notification emails from the embedded *.tmpl files.
// Each notification has a subject, a text and an html part named <name>.<part>.tmpl.
package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const (
	ActivityAssigned   = "activity_assigned"
	SubmissionReceived = "submission_received"
)

// NotificationData is what every notification template can reference.
type NotificationData struct {
	AppName        string `json:"AppName"`
	RecipientName  string `json:"RecipientName"`
	RecipientEmail string `json:"RecipientEmail"`
	TeacherName    string `json:"TeacherName"`
	StudentName    string `json:"StudentName"`
	ActivityTitle  string `json:"ActivityTitle"`
	Submission     string `json:"Submission"`
	Time           string `json:"Time"`
}

// ToMap flattens d into the shape carried by a queued job. Time defaults to now.
func ToMap(d NotificationData) map[string]any {
	if d.Time == "" {
		d.Time = time.Now().UTC().Format("02 January 2006, 15:04 MST")
	}
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// orDefault backs {{ .Value | default "Fallback" }}. Jobs arrive as decoded
// JSON, so only nil and blank strings count as empty.
func orDefault(fallback, value any) any {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	return value
}

func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

var funcs = map[string]any{
	"upper":    strings.ToUpper,
	"default":  orDefault,
	"truncate": truncate,
}

var (
	parseOnce sync.Once
	textSet   *texttpl.Template
	htmlSet   *htmpl.Template
	parseErr  error
)

func load() error {
	parseOnce.Do(func() {
		textSet, parseErr = texttpl.New("text").Funcs(funcs).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse text templates: %w", parseErr)
			return
		}
		htmlSet, parseErr = htmpl.New("html").Funcs(funcs).ParseFS(FS, "*.html.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse html templates: %w", parseErr)
		}
	})
	return parseErr
}

func execText(name string, data any) (string, error) {
	if textSet.Lookup(name) == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := textSet.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func execHTML(name string, data any) (string, error) {
	if htmlSet.Lookup(name) == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := htmlSet.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and html bodies of the named notification.
func Render(name string, data any) (subject, text, html string, err error) {
	if err = load(); err != nil {
		return "", "", "", err
	}
	if subject, err = execText(name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execText(name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execHTML(name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
