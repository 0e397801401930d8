package fieldrules

import "golang.org/x/text/language"

// Option represents a configurations option to
// be applied to validator during initialization.
type Option func(*Validate)

// WithLanguage sets the language messages are registered and rendered in.
// Keys without a template in that language render the English one.
func WithLanguage(tag language.Tag) Option {
	return func(v *Validate) {
		v.lang = tag
	}
}
