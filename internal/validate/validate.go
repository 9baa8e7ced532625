// Package validate provides composable single-value field validators.
package validate

import "unicode/utf8"

// Func reports whether a value satisfies a constraint.
type Func func(value string) bool

// Required passes any non-empty value.
func Required(value string) bool {
	return len(value) > 0
}

// MinLength passes empty values and values of at least n characters.
// Emptiness is Required's concern.
func MinLength(n int) Func {
	return func(value string) bool {
		return value == "" || utf8.RuneCountInString(value) >= n
	}
}

// MaxLength passes empty values and values of at most n characters.
func MaxLength(n int) Func {
	return func(value string) bool {
		return value == "" || utf8.RuneCountInString(value) <= n
	}
}

// Rule is a named validator with the message shown when it fails.
type Rule struct {
	Name    string
	Check   Func
	Message string
}

// Rules is an ordered set of rules applied to one field.
type Rules []Rule

// Failed returns the rules that reject value, in declaration order.
// Every rule is evaluated; a failure does not stop the rest.
func (rs Rules) Failed(value string) []Rule {
	var failed []Rule
	for _, r := range rs {
		if !r.Check(value) {
			failed = append(failed, r)
		}
	}
	return failed
}

// Messages returns the messages of the rules that reject value.
func (rs Rules) Messages(value string) []string {
	failed := rs.Failed(value)
	if len(failed) == 0 {
		return nil
	}
	msgs := make([]string, len(failed))
	for i, r := range failed {
		msgs[i] = r.Message
	}
	return msgs
}

// Valid reports whether every rule accepts value.
func (rs Rules) Valid(value string) bool {
	return len(rs.Failed(value)) == 0
}
