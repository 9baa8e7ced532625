package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/commentform"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash carries one-shot messages from a previous request.
type Flash struct {
	Success string
	Error   string
}

// Page is everything the campsite info templates need.
type Page struct {
	State State
	// Widget is the comment entry point; nil renders it closed.
	Widget *commentform.Widget
	// LazyURL is fetched by the loading placeholder to replace itself.
	LazyURL string
	Flash   Flash
}

// DirectoryPage lists the campsites.
type DirectoryPage struct {
	Campsites []*campsite.Campsite
	Flash     Flash
}

// FieldErrors is the data of the "field-errors" template.
type FieldErrors struct {
	Field    string
	Messages []string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the templates. imageBaseURL prefixes campsite image references.
func NewRenderer(imageBaseURL string) (*Renderer, error) {
	funcMap := template.FuncMap{
		"imageURL":      func(ref string) string { return ImageURL(imageBaseURL, ref) },
		"formatDate":    FormatDate,
		"description":   RenderDescription,
		"infoURL":       InfoURL,
		"ratingOptions": commentform.RatingOptions,
		"fieldErrors":   fieldErrors,
		"stars":         stars,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page renders the full campsite page with layout.
func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.execute(w, "campsite.html", p)
}

// Info renders only the campsite info block.
func (r *Renderer) Info(w io.Writer, p Page) error {
	return r.execute(w, "campsite-info", p)
}

// Comments renders only the comment list block with its form entry point.
func (r *Renderer) Comments(w io.Writer, p Page) error {
	return r.execute(w, "comments", p)
}

// FieldErrors renders the visible messages of one draft field.
func (r *Renderer) FieldErrors(w io.Writer, f *commentform.Form, field commentform.Field) error {
	return r.execute(w, "field-errors", fieldErrors(f, string(field)))
}

// Directory renders the campsite directory page.
func (r *Renderer) Directory(w io.Writer, d DirectoryPage) error {
	return r.execute(w, "directory.html", d)
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

func fieldErrors(f *commentform.Form, name string) FieldErrors {
	fe := FieldErrors{Field: name}
	if f != nil {
		fe.Messages = f.Errors(commentform.Field(name))
	}
	return fe
}

func stars(rating int) string {
	s := ""
	for i := commentform.MinRating; i <= commentform.MaxRating; i++ {
		if i <= rating {
			s += "★"
		} else {
			s += "☆"
		}
	}
	return s
}
