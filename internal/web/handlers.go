package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
	"github.com/evcraddock/nucamp/internal/commentform"
	"github.com/evcraddock/nucamp/internal/view"
)

// handleDirectory renders the campsite directory.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	campsites, err := s.campsites.List(campsite.ListOptions{})
	if err != nil {
		slog.Error("listing campsites", "error", err)
		http.Error(w, "Error loading campsites", http.StatusInternalServerError)
		return
	}

	flash := getFlashMessages(w, r)
	s.render(w, http.StatusOK, func(out io.Writer) error {
		return s.views.Directory(out, view.DirectoryPage{Campsites: campsites, Flash: flash})
	})
}

// handleDetail renders the page shell in its loading state; htmx swaps in
// the info view, and the placeholder links to it for clients without script.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := campsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	page := view.Page{
		State:   view.Select(view.Input{Loading: true}),
		LazyURL: view.InfoURL(id),
		Flash:   getFlashMessages(w, r),
	}
	s.render(w, http.StatusOK, func(out io.Writer) error {
		return s.views.Page(out, page)
	})
}

// handleInfo renders the campsite info view. ?comment=open opens the modal.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	id, err := campsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	in, status := s.load(id)
	page := view.Page{State: view.Select(in)}
	if page.State.IsContent() {
		page.Widget = commentform.NewWidget(id, nil)
		if r.URL.Query().Get("comment") == "open" {
			page.Widget.Open()
		}
	}

	if isHTMX(r) {
		s.render(w, status, func(out io.Writer) error { return s.views.Info(out, page) })
		return
	}
	page.Flash = getFlashMessages(w, r)
	s.render(w, status, func(out io.Writer) error { return s.views.Page(out, page) })
}

// handleCommentPost submits the comment form. An invalid draft re-renders
// the open modal with its errors; a valid one is stored and the modal closes.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	id, err := campsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	in, status := s.load(id)
	if in.Campsite == nil {
		page := view.Page{State: view.Select(in)}
		s.render(w, status, func(out io.Writer) error { return s.views.Page(out, page) })
		return
	}

	if in.Comments == nil {
		// No comment block is shown without a list, so a draft has nowhere to render.
		if isHTMX(r) {
			http.Error(w, "Comments are unavailable", http.StatusServiceUnavailable)
			return
		}
		setFlashError(w, r, "Comments are unavailable right now")
		http.Redirect(w, r, view.InfoURL(id), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var added *comment.Comment
	var addErr error
	widget := commentform.NewWidget(id, func(campsiteID int64, rating int, author, text string) {
		added, addErr = s.comments.Add(campsiteID, rating, author, text)
	})
	widget.Open()
	form := widget.Form()

	if err := fillForm(form, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := form.Submit(); err != nil {
		if !errors.Is(err, commentform.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Info("comment draft rejected", "campsite_id", id, "draft", form.ID(), "error", err)
		page := view.Page{State: view.Select(in), Widget: widget}
		if isHTMX(r) {
			// htmx only swaps 2xx responses
			s.render(w, http.StatusOK, func(out io.Writer) error { return s.views.Comments(out, page) })
			return
		}
		s.render(w, http.StatusUnprocessableEntity, func(out io.Writer) error { return s.views.Page(out, page) })
		return
	}

	if addErr != nil {
		slog.Error("adding comment", "campsite_id", id, "draft", form.ID(), "error", addErr)
		if isHTMX(r) {
			http.Error(w, "Error adding comment", http.StatusInternalServerError)
			return
		}
		setFlashError(w, r, "Your comment could not be saved")
		http.Redirect(w, r, view.InfoURL(id), http.StatusSeeOther)
		return
	}
	slog.Info("comment added", "campsite_id", id, "comment_id", added.ID, "draft", form.ID(), "rating", added.Rating)

	if isHTMX(r) {
		in, status = s.load(id)
		page := view.Page{State: view.Select(in), Widget: widget}
		s.render(w, status, func(out io.Writer) error { return s.views.Comments(out, page) })
		return
	}

	setFlashSuccess(w, r, "Comment added")
	http.Redirect(w, r, view.InfoURL(id), http.StatusSeeOther)
}

// handleCommentValidate validates one field the user has touched and
// returns its error block.
func (s *Server) handleCommentValidate(w http.ResponseWriter, r *http.Request) {
	id, err := campsiteID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("field")
	field, err := commentform.ParseField(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := commentform.NewForm(id, nil, nil)
	if err := form.UpdateField(name, r.PostForm.Get(name)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.render(w, http.StatusOK, func(out io.Writer) error {
		return s.views.FieldErrors(out, form, field)
	})
}

// fillForm applies the posted fields to the draft. A missing rating keeps
// the default; missing author or text count as empty.
func fillForm(form *commentform.Form, r *http.Request) error {
	for _, field := range commentform.Fields {
		name := string(field)
		values, ok := r.PostForm[name]
		if !ok && field == commentform.FieldRating {
			continue
		}
		value := ""
		if len(values) > 0 {
			value = values[0]
		}
		if err := form.UpdateField(name, value); err != nil {
			return err
		}
	}
	return nil
}
