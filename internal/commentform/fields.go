// Package commentform implements the comment submission form of the campsite
// page: the draft form state machine and the modal that gates it.
package commentform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/evcraddock/nucamp/internal/validate"
)

// Field names a draft field. Values match the HTML form input names.
type Field string

const (
	FieldRating Field = "rating"
	FieldAuthor Field = "author"
	FieldText   Field = "text"
)

// Fields lists the draft fields in display order.
var Fields = []Field{FieldRating, FieldAuthor, FieldText}

// ParseField returns the Field for name.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FieldRating, FieldAuthor, FieldText:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Rating bounds. A fresh draft starts at DefaultRating.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 1
)

// Author name length bounds.
const (
	AuthorMinLength = 2
	AuthorMaxLength = 15
)

// RatingOptions returns the selectable ratings in ascending order.
func RatingOptions() []int {
	opts := make([]int, 0, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		opts = append(opts, r)
	}
	return opts
}

// authorRules validate the author name.
var authorRules = validate.Rules{
	{Name: "required", Check: validate.Required, Message: "Required"},
	{Name: "minLength", Check: validate.MinLength(AuthorMinLength), Message: fmt.Sprintf("Must be at least %d characters", AuthorMinLength)},
	{Name: "maxLength", Check: validate.MaxLength(AuthorMaxLength), Message: fmt.Sprintf("Must be %d characters or less", AuthorMaxLength)},
}

// fieldRules maps each user-validated field to its rules.
// Rating is constrained on update; text accepts anything, including empty.
var fieldRules = map[Field]validate.Rules{
	FieldAuthor: authorRules,
}

// RulesFor returns the validation rules of a field (nil if it has none).
func RulesFor(f Field) validate.Rules {
	return fieldRules[f]
}

var (
	// ErrInvalid is returned by Submit when a field fails validation.
	ErrInvalid = errors.New("comment draft is invalid")

	// ErrClosed is returned when operating on a submitted or cancelled form.
	ErrClosed = errors.New("comment form is closed")

	// ErrUnknownField is returned for a field name the draft does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidRating is returned when a rating is not one of the allowed values.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ValidationError lists the failing fields and their messages.
// It matches ErrInvalid under errors.Is.
type ValidationError struct {
	Fields map[Field][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", n, strings.Join(e.Fields[Field(n)], ", ")))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalid, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrInvalid) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
