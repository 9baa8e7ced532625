package commentform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AddCommentFunc persists a new comment. The form calls it once per
// successful submit and does not observe the outcome.
type AddCommentFunc func(campsiteID int64, rating int, author, text string)

// State is the lifecycle state of a Form.
type State int

const (
	Editing State = iota
	Submitted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Draft holds the values of a comment being written.
type Draft struct {
	Rating int
	Author string
	Text   string
}

// Form is a single comment draft. It starts in Editing and ends in either
// Submitted or Cancelled; a new Form is needed for every new draft.
type Form struct {
	id         string
	campsiteID int64
	draft      Draft
	state      State
	touched    map[Field]bool
	errs       map[Field][]string
	add        AddCommentFunc
	onClose    func()
}

// NewForm creates an editing form for a campsite. add receives the comment on
// submit; onClose runs after add to close the enclosing modal.
func NewForm(campsiteID int64, add AddCommentFunc, onClose func()) *Form {
	f := &Form{
		id:         uuid.NewString(),
		campsiteID: campsiteID,
		draft:      Draft{Rating: DefaultRating},
		touched:    make(map[Field]bool),
		errs:       make(map[Field][]string),
		add:        add,
		onClose:    onClose,
	}
	for _, field := range Fields {
		f.recompute(field)
	}
	return f
}

// ID returns the draft identifier.
func (f *Form) ID() string { return f.id }

// CampsiteID returns the campsite the draft comments on.
func (f *Form) CampsiteID() int64 { return f.campsiteID }

// State returns the lifecycle state.
func (f *Form) State() State { return f.state }

// Draft returns a copy of the current field values.
func (f *Form) Draft() Draft { return f.draft }

// UpdateField sets a field from its raw input value and marks it touched.
// Only that field's validity is recomputed.
func (f *Form) UpdateField(name, value string) error {
	if f.state != Editing {
		return ErrClosed
	}

	field, err := ParseField(name)
	if err != nil {
		return err
	}

	switch field {
	case FieldRating:
		rating, err := parseRating(value)
		if err != nil {
			return err
		}
		f.draft.Rating = rating
	case FieldAuthor:
		f.draft.Author = value
	case FieldText:
		f.draft.Text = value
	}

	f.touched[field] = true
	f.recompute(field)
	return nil
}

// Touch marks a field as interacted with without changing its value.
func (f *Form) Touch(field Field) {
	f.touched[field] = true
}

// Touched reports whether the field has been interacted with.
func (f *Form) Touched(field Field) bool {
	return f.touched[field]
}

// Errors returns the messages to display for a field. Untouched fields
// never show errors.
func (f *Form) Errors(field Field) []string {
	if !f.touched[field] {
		return nil
	}
	return f.errs[field]
}

// Valid reports whether every field passes its rules.
func (f *Form) Valid() bool {
	for _, msgs := range f.errs {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Submit hands the draft to the AddCommentFunc and closes the modal.
// An invalid draft is rejected with a *ValidationError (matching ErrInvalid),
// every field becomes touched, and nothing is sent.
func (f *Form) Submit() error {
	if f.state != Editing {
		return ErrClosed
	}

	if !f.Valid() {
		verr := &ValidationError{Fields: make(map[Field][]string)}
		for _, field := range Fields {
			f.touched[field] = true
			if msgs := f.errs[field]; len(msgs) > 0 {
				verr.Fields[field] = msgs
			}
		}
		return verr
	}

	if f.add != nil {
		f.add(f.campsiteID, f.draft.Rating, f.draft.Author, f.draft.Text)
	}
	f.state = Submitted
	if f.onClose != nil {
		f.onClose()
	}
	return nil
}

// Cancel discards an editing draft without sending it.
func (f *Form) Cancel() {
	if f.state == Editing {
		f.state = Cancelled
	}
}

// recompute refreshes the cached validation messages of one field.
func (f *Form) recompute(field Field) {
	var value string
	switch field {
	case FieldAuthor:
		value = f.draft.Author
	case FieldText:
		value = f.draft.Text
	default:
		delete(f.errs, field)
		return
	}

	if msgs := RulesFor(field).Messages(value); len(msgs) > 0 {
		f.errs[field] = msgs
		return
	}
	delete(f.errs, field)
}

func parseRating(value string) (int, error) {
	r, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || r < MinRating || r > MaxRating {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, value)
	}
	return r, nil
}
