package fieldrules

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	utf8HexComma       = "0x2C"
	tagSeparator       = ","
	tagKeySeparator    = "="
	skipValidationTag  = "-"
	leftBracket        = "["
	rightBracket       = "]"
	restrictedTagChars = ".[],|=+()`~!@#$%^&*\\\"/?<>{}"
	restrictedTagErr   = "Tag '%s' either contains restricted characters or is the same as a restricted tag needed for normal operation"
	undefinedRuleErr   = "Undefined validation rule '%s'"
	nilRuleFuncErr     = "Validation rule '%s' has no Validate func"
)

var restrictedTags = map[string]struct{}{
	skipValidationTag: {},
	utf8HexComma:      {},
}

// Validate contains the registered rules, their messages and the tag cache.
type Validate struct {
	lang        language.Tag
	validations map[string]RuleFunc
	index       messageIndex
	catalog     *catalog.Builder
	printer     *message.Printer
	fallback    *message.Printer
	tagCache    *tagCache
}

// New returns a new instance of 'validate' with the baked-in
// "type" and "byterangelength" rules and their messages registered.
// Validate is designed to be thread-safe once registration is done,
// and used as a singleton instance.
func New(options ...Option) *Validate {
	v := &Validate{
		lang:        language.English,
		validations: make(map[string]RuleFunc, len(bakedInValidators)),
		index:       make(messageIndex),
		catalog:     catalog.NewBuilder(catalog.Fallback(fallbackLanguage)),
		tagCache:    newTagCache(),
	}

	for _, o := range options {
		o(v)
	}

	// must copy validators for separate validations
	// to be used in each instance
	for k, fn := range bakedInValidators {
		// no need to error check here, baked in will always be valid
		_ = v.registerValidation(k, fn, true)
	}

	for k, msgs := range bakedInMessages {
		_ = v.RegisterMessagesFor(fallbackLanguage, k, msgs)
	}

	v.printer = message.NewPrinter(v.lang, message.Catalog(v.catalog))
	v.fallback = message.NewPrinter(fallbackLanguage, message.Catalog(v.catalog))
	return v
}

// RegisterValidation adds a rule under the given name.
//
// NOTES:
// If the name already exists, the previous rule will be replaced.
// This method is not thread-safe it is intended that these all be registered prior to any validation.
func (v *Validate) RegisterValidation(name string, fn RuleFunc) error {
	return v.registerValidation(name, fn, false)
}

// Rule builds the rule registered under name.
func (v *Validate) Rule(name string) (Rule, bool) {
	fn, ok := v.validations[name]
	if !ok {
		return Rule{}, false
	}

	return fn(), true
}

// RuleNames returns the registered rule names in sorted order.
func (v *Validate) RuleNames() []string {
	names := make([]string, 0, len(v.validations))
	for name := range v.validations {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// Language returns the language messages are rendered in.
func (v *Validate) Language() language.Tag {
	return v.lang
}

// Var validates a single value using tag style validation.
// For example:
//
//	err := validate.Var(addr, "type=anyip")
//	err := validate.Var(name, "byterangelength=1 32")
//
// Entries are separated by commas, a comma inside a param is written as 0x2C.
// Rules run by priority, highest first, and lower priorities are skipped
// once a priority level has failed.
//
// It returns nil or ValidationErrors as error.
// An undefined rule in tag panics, use CheckTag to test a tag beforehand.
func (v *Validate) Var(value string, tag string) error {
	if len(tag) == 0 || tag == skipValidationTag {
		return nil
	}

	ctags, err := v.fetchTag(tag)
	if err != nil {
		panic(err.Error())
	}

	var errs ValidationErrors
	for i, ct := range ctags {
		if len(errs) > 0 && ct.rule.Priority != ctags[i-1].rule.Priority {
			break
		}

		if !ct.rule.Validate(value, ct.param) {
			errs = append(errs, &fieldError{
				tag:     ct.name,
				param:   ct.param,
				value:   value,
				message: v.Message(ct.name, ct.param),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckTag reports an error when tag refers to an undefined rule.
func (v *Validate) CheckTag(tag string) error {
	if len(tag) == 0 || tag == skipValidationTag {
		return nil
	}

	_, err := v.fetchTag(tag)
	return err
}

func (v *Validate) registerValidation(name string, fn RuleFunc, bakedIn bool) error {
	if len(name) == 0 {
		return errors.New("function Key cannot be empty")
	}

	if fn == nil {
		return errors.New("function cannot be empty")
	}

	if _, ok := restrictedTags[name]; !bakedIn && (ok || strings.ContainsAny(name, restrictedTagChars)) {
		panic(fmt.Sprintf(restrictedTagErr, name))
	}

	v.validations[name] = fn
	v.tagCache.Reset()
	return nil
}

func (v *Validate) fetchTag(tag string) ([]cTag, error) {
	if ctags, ok := v.tagCache.Get(tag); ok {
		return ctags, nil
	}

	v.tagCache.lock.Lock()
	defer v.tagCache.lock.Unlock()

	// re-check, another goroutine may have parsed it meanwhile
	if ctags, ok := v.tagCache.Get(tag); ok {
		return ctags, nil
	}

	ctags, err := v.parseTag(tag)
	if err != nil {
		return nil, err
	}

	v.tagCache.Set(tag, ctags)
	return ctags, nil
}

// parseTag resolves every entry of tag and orders them by priority.
func (v *Validate) parseTag(tag string) ([]cTag, error) {
	entries := strings.Split(tag, tagSeparator)
	ctags := make([]cTag, 0, len(entries))
	for _, entry := range entries {
		vals := strings.SplitN(strings.TrimSpace(entry), tagKeySeparator, 2)
		name := vals[0]
		if len(name) == 0 {
			continue
		}

		fn, ok := v.validations[name]
		if !ok {
			return nil, fmt.Errorf(undefinedRuleErr, name)
		}

		ct := cTag{name: name, rule: fn()}
		if ct.rule.Validate == nil {
			return nil, fmt.Errorf(nilRuleFuncErr, name)
		}

		if len(vals) > 1 {
			ct.param = strings.ReplaceAll(vals[1], utf8HexComma, ",")
		}

		ctags = append(ctags, ct)
	}

	slices.SortStableFunc(ctags, func(a, b cTag) int {
		return cmp.Compare(b.rule.Priority, a.rule.Priority)
	})

	return ctags, nil
}
