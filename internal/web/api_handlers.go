package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
	"github.com/evcraddock/nucamp/internal/commentform"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encoding json response", "error", err)
	}
}

// apiListCampsites returns all campsites. ?featured=true limits the list.
func (s *Server) apiListCampsites(w http.ResponseWriter, r *http.Request) {
	opts := campsite.ListOptions{}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			apiError(w, "featured must be true or false", http.StatusBadRequest)
			return
		}
		opts.FeaturedOnly = featured
	}

	campsites, err := s.campsites.List(opts)
	if err != nil {
		apiError(w, fmt.Sprintf("listing campsites: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, campsites, http.StatusOK)
}

// apiGetCampsite returns a campsite with its comments.
func (s *Server) apiGetCampsite(w http.ResponseWriter, r *http.Request) {
	id, ok := apiCampsiteID(w, r)
	if !ok {
		return
	}

	c, err := s.campsites.GetByID(id)
	if err != nil {
		apiLookupError(w, err)
		return
	}

	comments, err := s.comments.ListByCampsiteID(id)
	if err != nil {
		apiError(w, fmt.Sprintf("loading comments: %v", err), http.StatusInternalServerError)
		return
	}

	type response struct {
		Campsite *campsite.Campsite `json:"campsite"`
		Comments []*comment.Comment `json:"comments"`
	}
	apiJSON(w, response{Campsite: c, Comments: comments}, http.StatusOK)
}

// apiListComments returns the comments of a campsite in the order they were added.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := apiCampsiteID(w, r)
	if !ok {
		return
	}

	if _, err := s.campsites.GetByID(id); err != nil {
		apiLookupError(w, err)
		return
	}

	comments, err := s.comments.ListByCampsiteID(id)
	if err != nil {
		apiError(w, fmt.Sprintf("loading comments: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, comments, http.StatusOK)
}

// AddCommentRequest is the body of POST /api/campsites/{id}/comments.
type AddCommentRequest struct {
	Rating int    `json:"rating"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// apiAddComment validates the request through a comment form and stores it.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := apiCampsiteID(w, r)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if _, err := s.campsites.GetByID(id); err != nil {
		apiLookupError(w, err)
		return
	}

	var added *comment.Comment
	var addErr error
	form := commentform.NewForm(id, func(campsiteID int64, rating int, author, text string) {
		added, addErr = s.comments.Add(campsiteID, rating, author, text)
	}, nil)

	if req.Rating == 0 {
		req.Rating = commentform.DefaultRating
	}
	if err := form.UpdateField(string(commentform.FieldRating), strconv.Itoa(req.Rating)); err != nil {
		apiError(w, "rating must be 1-5", http.StatusBadRequest)
		return
	}
	if err := form.UpdateField(string(commentform.FieldAuthor), req.Author); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := form.UpdateField(string(commentform.FieldText), req.Text); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := form.Submit(); err != nil {
		var verr *commentform.ValidationError
		if errors.As(err, &verr) {
			apiJSON(w, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			}, http.StatusUnprocessableEntity)
			return
		}
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if addErr != nil {
		apiError(w, fmt.Sprintf("adding comment: %v", addErr), http.StatusInternalServerError)
		return
	}

	slog.Info("comment added", "campsite_id", id, "comment_id", added.ID, "draft", form.ID(), "source", "api")
	apiJSON(w, added, http.StatusCreated)
}

// apiCampsiteID parses the {id} parameter, writing a 400 when it is malformed.
func apiCampsiteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := campsiteID(r)
	if err != nil {
		apiError(w, "invalid campsite ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func apiLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, campsite.ErrNotFound) {
		apiError(w, "campsite not found", http.StatusNotFound)
		return
	}
	apiError(w, fmt.Sprintf("loading campsite: %v", err), http.StatusInternalServerError)
}
