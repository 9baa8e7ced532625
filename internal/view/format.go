package view

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// DateLayout renders dates like "Oct 08, 2026".
const DateLayout = "Jan 02, 2006"

// FormatDate formats a comment date for display.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ImageURL joins the configured image base URL and a campsite image reference.
func ImageURL(base, ref string) string {
	return base + ref
}

// InfoURL is the address of a campsite's info view.
func InfoURL(id int64) string {
	return fmt.Sprintf("/directory/%d/info", id)
}

var (
	markdown  = goldmark.New()
	sanitizer = bluemonday.UGCPolicy()
)

// RenderDescription converts a markdown campsite description to sanitized HTML.
func RenderDescription(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
