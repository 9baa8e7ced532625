package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/view"
)

// load fetches what the campsite info view needs and reports the HTTP status
// that goes with it. Lookup failures become an error message for the view.
func (s *Server) load(id int64) (view.Input, int) {
	c, err := s.campsites.GetByID(id)
	if errors.Is(err, campsite.ErrNotFound) {
		return view.Input{ErrMess: fmt.Sprintf("Campsite %d not found", id)}, http.StatusNotFound
	}
	if err != nil {
		slog.Error("loading campsite", "campsite_id", id, "error", err)
		return view.Input{ErrMess: "Could not load campsite"}, http.StatusInternalServerError
	}

	comments, err := s.comments.ListByCampsiteID(id)
	if err != nil {
		// The page still shows the campsite; the comment block stays empty.
		slog.Error("loading comments", "campsite_id", id, "error", err)
		return view.Input{Campsite: c}, http.StatusOK
	}

	return view.Input{Campsite: c, Comments: comments}, http.StatusOK
}
