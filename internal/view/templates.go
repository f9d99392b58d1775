package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	User        shared.Identity
	Data        any
}

// DisplayName upper-cases the first letter of a username and keeps the rest
// exactly as typed. Casers are stateful, so each call builds its own.
func DisplayName(username string) string {
	first, size := utf8.DecodeRuneInString(username)
	if size == 0 {
		return ""
	}
	return cases.Upper(language.Und).String(string(first)) + username[size:]
}

// FormatDate renders a YYYY-MM-DD value as "02 Jan 2006". Unparseable input
// is returned unchanged; nil or empty renders as "".
func FormatDate(v any) string {
	var raw string
	switch d := v.(type) {
	case string:
		raw = d
	case *string:
		if d == nil {
			return ""
		}
		raw = *d
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format(displayDateLayout)
	default:
		return ""
	}
	t, err := time.Parse(isoDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(displayDateLayout)
}

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02 Jan 2006"
)

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate":  FormatDate,
		"displayName": DisplayName,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates(), web.TemplatePatterns...)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
