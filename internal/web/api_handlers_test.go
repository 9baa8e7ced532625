package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
)

func apiRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	reqBody := &bytes.Buffer{}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestAPIListCampsites(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, "React Lake Campground")
	insertTestCampsite(t, d, "Chrome River")

	w := apiRequest(t, srv, "GET", "/api/campsites", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var campsites []*campsite.Campsite
	if err := json.NewDecoder(w.Body).Decode(&campsites); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(campsites) != 2 {
		t.Fatalf("got %d campsites, want 2", len(campsites))
	}
	if campsites[0].Name != "React Lake Campground" {
		t.Errorf("first campsite = %q", campsites[0].Name)
	}
}

func TestAPIListCampsitesEmpty(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/campsites", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := bytes.TrimSpace(w.Body.Bytes()); string(got) != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestAPIListCampsitesFeatured(t *testing.T) {
	srv, d := testServerWithDB(t)
	insertTestCampsite(t, d, "Plain Camp")
	if _, err := d.Exec(`INSERT INTO campsites (name, description, image, featured) VALUES ('Star Camp', '', 'star.jpg', 1)`); err != nil {
		t.Fatalf("insert featured: %v", err)
	}

	w := apiRequest(t, srv, "GET", "/api/campsites?featured=true", nil)
	var campsites []*campsite.Campsite
	if err := json.NewDecoder(w.Body).Decode(&campsites); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(campsites) != 1 || campsites[0].Name != "Star Camp" {
		t.Errorf("featured campsites = %+v", campsites)
	}

	w = apiRequest(t, srv, "GET", "/api/campsites?featured=maybe", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIGetCampsite(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Breadcrumb Trail")
	insertTestComment(t, d, id, 4, "Ann", "Lovely")

	w := apiRequest(t, srv, "GET", fmt.Sprintf("/api/campsites/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Campsite *campsite.Campsite `json:"campsite"`
		Comments []*comment.Comment `json:"comments"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Campsite.ID != id {
		t.Errorf("campsite ID = %d, want %d", resp.Campsite.ID, id)
	}
	if len(resp.Comments) != 1 || resp.Comments[0].Author != "Ann" {
		t.Errorf("comments = %+v", resp.Comments)
	}
}

func TestAPIGetCampsiteNotFound(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/campsites/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPIGetCampsiteBadID(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/campsites/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIAddComment(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")

	body := AddCommentRequest{Rating: 5, Author: "Al", Text: "Great views"}
	w := apiRequest(t, srv, "POST", fmt.Sprintf("/api/campsites/%d/comments", id), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var c comment.Comment
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.CampsiteID != id || c.Rating != 5 || c.Author != "Al" || c.Text != "Great views" {
		t.Errorf("comment = %+v", c)
	}
}

func TestAPIAddCommentDefaultRating(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")

	w := apiRequest(t, srv, "POST", fmt.Sprintf("/api/campsites/%d/comments", id), map[string]string{"author": "Bo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var c comment.Comment
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Rating != 1 {
		t.Errorf("rating = %d, want 1", c.Rating)
	}
}

func TestAPIAddCommentInvalidAuthor(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")

	w := apiRequest(t, srv, "POST", fmt.Sprintf("/api/campsites/%d/comments", id), AddCommentRequest{Rating: 3, Author: "A"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := resp.Fields["author"]; len(got) != 1 || got[0] != "Must be at least 2 characters" {
		t.Errorf("author errors = %v", got)
	}
	if n := countComments(t, d, id); n != 0 {
		t.Errorf("comments stored = %d, want 0", n)
	}
}

func TestAPIAddCommentInvalidRating(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")

	w := apiRequest(t, srv, "POST", fmt.Sprintf("/api/campsites/%d/comments", id), AddCommentRequest{Rating: 9, Author: "Al"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIAddCommentUnknownCampsite(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "POST", "/api/campsites/77/comments", AddCommentRequest{Rating: 3, Author: "Al"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPIAddCommentBadJSON(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")

	r := httptest.NewRequest("POST", fmt.Sprintf("/api/campsites/%d/comments", id), bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIListComments(t *testing.T) {
	srv, d := testServerWithDB(t)
	id := insertTestCampsite(t, d, "Pine Hollow")
	insertTestComment(t, d, id, 2, "First", "one")
	insertTestComment(t, d, id, 3, "Second", "two")

	w := apiRequest(t, srv, "GET", fmt.Sprintf("/api/campsites/%d/comments", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var comments []*comment.Comment
	if err := json.NewDecoder(w.Body).Decode(&comments); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Author != "First" || comments[1].Author != "Second" {
		t.Errorf("comments out of order: %q, %q", comments[0].Author, comments[1].Author)
	}
}

func TestAPIMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "DELETE", "/api/campsites", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
