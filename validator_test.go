package fieldrules

import (
	"strings"
	"sync"
	"testing"

	. "github.com/pchchv/go-assert"
)

func alwaysFail() Rule {
	return Rule{
		Validate: func(string, string) bool { return false },
		Priority: 64,
	}
}

func TestNewRegistersBakedIn(t *testing.T) {
	validate := New()
	Equal(t, validate.RuleNames(), []string{"byterangelength", "type"})

	for _, name := range validate.RuleNames() {
		rule, ok := validate.Rule(name)
		Equal(t, ok, true)
		Equal(t, rule.Priority, DefaultPriority)
	}

	_, ok := validate.Rule("required")
	Equal(t, ok, false)
}

func TestRegisterValidation(t *testing.T) {
	validate := New()

	err := validate.RegisterValidation("", alwaysFail)
	NotEqual(t, err, nil)
	Equal(t, err.Error(), "function Key cannot be empty")

	err = validate.RegisterValidation("alwaysfail", nil)
	NotEqual(t, err, nil)
	Equal(t, err.Error(), "function cannot be empty")

	PanicMatches(t, func() {
		_ = validate.RegisterValidation("bad=name", alwaysFail)
	}, "Tag 'bad=name' either contains restricted characters or is the same as a restricted tag needed for normal operation")

	PanicMatches(t, func() {
		_ = validate.RegisterValidation("-", alwaysFail)
	}, "Tag '-' either contains restricted characters or is the same as a restricted tag needed for normal operation")

	err = validate.RegisterValidation("alwaysfail", alwaysFail)
	Equal(t, err, nil)
	rule, ok := validate.Rule("alwaysfail")
	Equal(t, ok, true)
	Equal(t, rule.Priority, 64)
	Equal(t, validate.RuleNames(), []string{"alwaysfail", "byterangelength", "type"})
}

func TestRegisterValidationIsPerInstance(t *testing.T) {
	first := New()
	second := New()

	Equal(t, first.RegisterValidation("alwaysfail", alwaysFail), nil)

	_, ok := second.Rule("alwaysfail")
	Equal(t, ok, false)
	Equal(t, len(bakedInValidators), 2)
}

func TestVarValidation(t *testing.T) {
	tests := []struct {
		value       string
		tag         string
		expectedNil bool
	}{
		{"192.168.1.1", "type=ipv4", true},
		{"256.1.1.1", "type=ipv4", false},
		{"2001:db8::1", "type=ipv6", true},
		{"2001:db8::1/64", "type=ipv6prefix", true},
		{"2001:db8::1/129", "type=ipv6prefix", false},
		{"00:1A:2b:3C:4d:5E", "type=macaddress", true},
		{"192.168.1.1", "type=anyip", true},
		{"not-an-address", "type=anyip", false},
		{"", "type=anyip", false},
		{"192.168.1.1", "type=hostname", false},
		{"hello", "byterangelength=1 10", true},
		{"héllo", "byterangelength=1 5", false},
		{"", "byterangelength=0 5", true},
		{"hello", "byterangelength=[1 0x2C 10]", true},
		{"hello", "byterangelength=[6 0x2C 10]", false},
		{"192.168.1.1", "type=ipv4,byterangelength=7 15", true},
		{"192.168.1.1", "type=ipv4, byterangelength=1 5", false},
		{"anything", "", true},
		{"anything", "-", true},
	}

	validate := New()
	for i, test := range tests {
		errs := validate.Var(test.value, test.tag)
		if (test.expectedNil && errs != nil) || (!test.expectedNil && errs == nil) {
			t.Fatalf("Index: %d failed Error: %s", i, errs)
		}
	}
}

func TestVarUndefinedRule(t *testing.T) {
	validate := New()

	PanicMatches(t, func() {
		_ = validate.Var("192.168.1.1", "type=ipv4,hostname")
	}, "Undefined validation rule 'hostname'")

	NotEqual(t, validate.CheckTag("type=ipv4,hostname"), nil)
	Equal(t, validate.CheckTag("type=ipv4,byterangelength=1 10"), nil)
	Equal(t, validate.CheckTag(""), nil)
}

func TestVarNilValidateFunc(t *testing.T) {
	validate := New()
	Equal(t, validate.RegisterValidation("empty", func() Rule { return Rule{} }), nil)

	err := validate.CheckTag("empty")
	NotEqual(t, err, nil)
	Equal(t, err.Error(), "Validation rule 'empty' has no Validate func")
}

func TestVarFieldErrors(t *testing.T) {
	validate := New()

	err := validate.Var("héllo", "type=ipv4,byterangelength=1 5")
	NotEqual(t, err, nil)

	errs, ok := err.(ValidationErrors)
	Equal(t, ok, true)
	Equal(t, len(errs), 2)

	Equal(t, errs[0].Tag(), "type")
	Equal(t, errs[0].Param(), "ipv4")
	Equal(t, errs[0].Value(), "héllo")
	Equal(t, errs[0].Message(), "This is not a valid IPv4 address.")
	Equal(t, errs[0].Error(), "Value: 'héllo' Error:Field validation failed on the 'type' rule: This is not a valid IPv4 address.")

	Equal(t, errs[1].Tag(), "byterangelength")
	Equal(t, errs[1].Param(), "1 5")
	Equal(t, errs[1].Message(), "This value length is invalid. It should be between 1 and 5 characters long.")

	Equal(t, errs.Messages(), []string{
		"This is not a valid IPv4 address.",
		"This value length is invalid. It should be between 1 and 5 characters long.",
	})
	Equal(t, strings.Count(errs.Error(), "\n"), 1)
}

func TestVarPriorityGroups(t *testing.T) {
	validate := New()
	Equal(t, validate.RegisterValidation("alwaysfail", alwaysFail), nil)

	// the higher priority rule fails, the "type" rule is never reached
	err := validate.Var("bogus", "type=ipv4,alwaysfail")
	NotEqual(t, err, nil)
	errs := err.(ValidationErrors)
	Equal(t, len(errs), 1)
	Equal(t, errs[0].Tag(), "alwaysfail")
	Equal(t, errs[0].Message(), "Field validation failed on the 'alwaysfail' rule.")

	var calls int
	Equal(t, validate.RegisterValidation("counted", func() Rule {
		return Rule{
			Validate: func(string, string) bool {
				calls++
				return true
			},
			Priority: 1,
		}
	}), nil)

	_ = validate.Var("bogus", "counted,type=ipv4")
	Equal(t, calls, 0)

	Equal(t, validate.Var("192.168.1.1", "counted,type=ipv4"), nil)
	Equal(t, calls, 1)
}

func TestRegisterValidationResetsTagCache(t *testing.T) {
	validate := New()
	Equal(t, validate.Var("192.168.1.1", "type=ipv4"), nil)

	_, found := validate.tagCache.Get("type=ipv4")
	Equal(t, found, true)

	// replacing a rule must not leave the old one cached
	Equal(t, validate.RegisterValidation("type", func() Rule {
		return Rule{Validate: func(string, string) bool { return false }, Priority: DefaultPriority}
	}), nil)

	_, found = validate.tagCache.Get("type=ipv4")
	Equal(t, found, false)
	NotEqual(t, validate.Var("192.168.1.1", "type=ipv4"), nil)
}

func TestVarConcurrent(t *testing.T) {
	validate := New()
	values := map[string]bool{
		"192.168.1.1":       true,
		"2001:db8::1":       true,
		"00:1A:2b:3C:4d:5E": false,
		"not-an-address":    false,
	}

	var wg sync.WaitGroup
	errc := make(chan string, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for value, valid := range values {
					err := validate.Var(value, "type=anyip,byterangelength=1 64")
					if (err == nil) != valid {
						errc <- value
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errc)
	for value := range errc {
		t.Fatalf("unexpected result for %q", value)
	}
}
