// Package view selects and renders what the campsite info page shows.
package view

import (
	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
)

// Kind tags which of the mutually exclusive page states is shown.
type Kind int

const (
	Empty Kind = iota
	Loading
	Error
	Content
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Content:
		return "content"
	default:
		return "empty"
	}
}

// Input is what the data-fetching side knows about a campsite page.
type Input struct {
	Loading  bool
	ErrMess  string
	Campsite *campsite.Campsite
	// Comments is nil when no comment list is available, which differs
	// from a campsite that has no comments yet.
	Comments []*comment.Comment
}

// State is the selected page state. Message is set for Error; Campsite and
// Comments for Content.
type State struct {
	Kind     Kind
	Message  string
	Campsite *campsite.Campsite
	Comments []*comment.Comment
}

// Select picks the page state in fixed priority: loading, then error, then
// content, else empty.
func Select(in Input) State {
	switch {
	case in.Loading:
		return State{Kind: Loading}
	case in.ErrMess != "":
		return State{Kind: Error, Message: in.ErrMess}
	case in.Campsite != nil:
		return State{Kind: Content, Campsite: in.Campsite, Comments: in.Comments}
	default:
		return State{Kind: Empty}
	}
}

func (s State) IsLoading() bool { return s.Kind == Loading }
func (s State) IsError() bool   { return s.Kind == Error }
func (s State) IsContent() bool { return s.Kind == Content }
func (s State) IsEmpty() bool   { return s.Kind == Empty }

// HasComments reports whether a comment list (possibly empty) is present.
func (s State) HasComments() bool {
	return s.Kind == Content && s.Comments != nil
}
