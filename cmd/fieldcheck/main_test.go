package main

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/pchchv/go-assert"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("FIELDCHECK_NO_COLOR", "true")

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunValidValues(t *testing.T) {
	code, out, _ := runCmd(t, "type=anyip", "192.168.1.1", "2001:db8::1")
	Equal(t, code, exitOK)
	Equal(t, out, "192.168.1.1: ok\n2001:db8::1: ok\n")
}

func TestRunInvalidValues(t *testing.T) {
	code, out, _ := runCmd(t, "type=ipv4", "192.168.1.1", "256.1.1.1")
	Equal(t, code, exitInvalid)
	Equal(t, out, "192.168.1.1: ok\n256.1.1.1: This is not a valid IPv4 address.\n")

	code, out, _ = runCmd(t, "byterangelength=1 5", "héllo")
	Equal(t, code, exitInvalid)
	Equal(t, out, "héllo: This value length is invalid. It should be between 1 and 5 characters long.\n")
}

func TestRunUsageErrors(t *testing.T) {
	code, _, errOut := runCmd(t, "type=ipv4")
	Equal(t, code, exitUsage)
	Equal(t, strings.HasPrefix(errOut, "Error:"), true)

	code, _, errOut = runCmd(t, "hostname", "router")
	Equal(t, code, exitUsage)
	Equal(t, errOut, "Error: Undefined validation rule 'hostname'\n")
}

func TestRunBadLanguage(t *testing.T) {
	t.Setenv("FIELDCHECK_LANG", "not a language")
	code, _, errOut := runCmd(t, "type=ipv4", "192.168.1.1")
	Equal(t, code, exitUsage)
	Equal(t, strings.HasPrefix(errOut, "FIELDCHECK_LANG:"), true)
}

func TestRulesCommand(t *testing.T) {
	code, out, _ := runCmd(t, "rules")
	Equal(t, code, exitOK)
	Equal(t, out, "byterangelength\t32\ntype\t32\n")
}
