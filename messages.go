package fieldrules

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	typeTag             = "type"
	byteRangeLengthTag  = "byterangelength"
	messageKeySeparator = "."
	placeholder         = "%s"
	defaultMessage      = "Field validation failed on the '%s' rule."
	restrictedMsgKeyErr = "message key %q contains restricted characters"
)

// fallbackLanguage is the language of the baked-in templates,
// used for every key the instance language has no template for.
var fallbackLanguage = language.English

// Messages holds the message templates of one rule keyed by param,
// e.g. by type tag for the "type" rule.
// A template shared by every param is stored under the empty key.
// Templates may contain %s placeholders, filled with the param fields in order.
type Messages map[string]string

var bakedInMessages = map[string]Messages{
	typeTag: {
		string(IPv4):       "This is not a valid IPv4 address.",
		string(IPv6):       "This is not a valid IPv6 address.",
		string(AnyIP):      "This is not a valid IPv4 or IPv6 address.",
		string(IPv6Prefix): "This is not a valid IPv6 prefix.",
		string(MACAddress): "This is not a valid MAC address.",
	},
	byteRangeLengthTag: {
		"": "This value length is invalid. It should be between %s and %s characters long.",
	},
}

// messageIndex records the catalog keys registered per language
// together with the placeholder count of each template.
type messageIndex map[language.Tag]map[string]int

// lookup finds key for tag or the closest parent of tag.
func (idx messageIndex) lookup(tag language.Tag, key string) (int, bool) {
	for {
		if n, ok := idx[tag][key]; ok {
			return n, true
		}

		if tag == language.Und {
			return 0, false
		}

		tag = tag.Parent()
	}
}

func (idx messageIndex) add(tag language.Tag, key string, n int) {
	keys, ok := idx[tag]
	if !ok {
		keys = make(map[string]int)
		idx[tag] = keys
	}

	keys[key] = n
}

// RegisterMessages adds message templates for the rule name
// in the language of the instance.
// Templates for params that already have one are replaced.
//
// NOTE: this method is not thread-safe it is intended that these all be registered prior to any validation.
func (v *Validate) RegisterMessages(name string, msgs Messages) error {
	return v.RegisterMessagesFor(v.lang, name, msgs)
}

// RegisterMessagesFor adds message templates for the rule name in the given language.
// The instance renders templates of its own language (or a parent of it)
// and falls back to English ones.
func (v *Validate) RegisterMessagesFor(tag language.Tag, name string, msgs Messages) error {
	if len(name) == 0 {
		return errors.New("message key cannot be empty")
	}

	if strings.ContainsAny(name, restrictedTagChars) {
		return fmt.Errorf(restrictedMsgKeyErr, name)
	}

	for param, tmpl := range msgs {
		key := messageKey(name, param)
		if err := v.catalog.SetString(tag, key, tmpl); err != nil {
			return fmt.Errorf("register message %q: %w", key, err)
		}

		v.index.add(tag, key, strings.Count(tmpl, placeholder))
	}

	return nil
}

// Languages returns the languages holding message templates,
// English first.
func (v *Validate) Languages() []language.Tag {
	return v.catalog.Languages()
}

// Message renders the template for the rule name and param.
// A template registered for the exact param wins over the rule-level one,
// in whichever language it exists.
// The instance language is preferred, English is used for keys it lacks.
// Without any template a generic message naming the rule is returned.
func (v *Validate) Message(name, param string) string {
	if strings.ContainsAny(name, restrictedTagChars) {
		return fmt.Sprintf(defaultMessage, name)
	}

	key := messageKey(name, param)
	if !v.hasMessage(key) {
		key = name
		if !v.hasMessage(key) {
			return fmt.Sprintf(defaultMessage, name)
		}
	}

	p := v.printer
	n, ok := v.index.lookup(v.lang, key)
	if !ok {
		p = v.fallback
		n, _ = v.index.lookup(fallbackLanguage, key)
	}

	return p.Sprintf(key, placeholderArgs(n, param)...)
}

func (v *Validate) hasMessage(key string) bool {
	if _, ok := v.index.lookup(v.lang, key); ok {
		return true
	}

	_, ok := v.index.lookup(fallbackLanguage, key)
	return ok
}

// messageKey is the catalog key of a template.
// Rule names never contain the separator, so keys of distinct
// (name, param) pairs never collide.
func messageKey(name, param string) string {
	if param == "" {
		return name
	}

	return name + messageKeySeparator + param
}

// placeholderArgs returns exactly n arguments,
// taken from the param fields and padded with empty strings.
func placeholderArgs(n int, param string) []interface{} {
	if n == 0 {
		return nil
	}

	fields := splitParams(param)
	args := make([]interface{}, n)
	for i := range args {
		if i < len(fields) {
			args[i] = fields[i]
		} else {
			args[i] = ""
		}
	}

	return args
}
