package fieldrules

import (
	"bytes"
	"fmt"
	"strings"
)

const fieldErrMsg = "Value: '%s' Error:Field validation failed on the '%s' rule: %s"

// FieldError contains all functions to get error details.
type FieldError interface {
	// Tag returns the name of the rule that failed.
	// For example, "type" for the tag entry "type=ipv4".
	Tag() string
	// Param returns the rule parameter as written in the tag.
	// For example, "ipv4" for "type=ipv4" or "1 10" for "byterangelength=1 10".
	Param() string
	// Value returns the value that failed validation.
	Value() string
	// Message returns the rendered message template of the failed rule.
	Message() string
	// Error returns the FieldError's message.
	Error() string
}

// fieldError contains a single rule failure for a value,
// it complies with the FieldError interface.
type fieldError struct {
	tag     string
	param   string
	value   string
	message string
}

// Tag returns the name of the rule that failed.
func (fe *fieldError) Tag() string {
	return fe.tag
}

// Param returns the param for the rule.
func (fe *fieldError) Param() string {
	return fe.param
}

// Value returns the value that failed validation.
func (fe *fieldError) Value() string {
	return fe.value
}

// Message returns the rendered message template.
func (fe *fieldError) Message() string {
	return fe.message
}

// Error returns the fieldError's error message.
func (fe *fieldError) Error() string {
	return fmt.Sprintf(fieldErrMsg, fe.value, fe.tag, fe.message)
}

// ValidationErrors is an array of FieldError's
// for use in custom error messages post validation.
type ValidationErrors []FieldError

// Error is intended for use in development + debugging and not intended to be a production error message.
// It allows ValidationErrors to subscribe to the Error interface.
// All information to create an error message specific to your application is contained within
// the FieldError found within the ValidationErrors array.
func (ve ValidationErrors) Error() string {
	buff := bytes.NewBufferString("")
	for i := 0; i < len(ve); i++ {
		buff.WriteString(ve[i].Error())
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// Messages returns the rendered messages of all failures in order.
func (ve ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(ve))
	for _, fe := range ve {
		messages = append(messages, fe.Message())
	}

	return messages
}
