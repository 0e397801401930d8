// Command fieldcheck runs form field values through validation rules
// from the command line.
//
//	fieldcheck type=anyip 192.168.1.1 2001:db8::1
//	fieldcheck "byterangelength=1 32" héllo
//	fieldcheck rules
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
	"github.com/pchchv/fieldrules"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitInvalid = 2
)

var errInvalidValues = errors.New("invalid values")

type config struct {
	Lang    string `env:"FIELDCHECK_LANG" envDefault:"en"`
	NoColor bool   `env:"FIELDCHECK_NO_COLOR"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	lang, err := language.Parse(cfg.Lang)
	if err != nil {
		fmt.Fprintf(stderr, "FIELDCHECK_LANG: %v\n", err)
		return exitUsage
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	root := newRootCmd(fieldrules.New(fieldrules.WithLanguage(lang)))
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errInvalidValues) {
			return exitInvalid
		}

		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	return exitOK
}

func newRootCmd(v *fieldrules.Validate) *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldcheck <tag> <value>...",
		Short: "Validate values against form field rules",
		Long: "Validate values against form field rules.\n\n" +
			"The tag lists rules as name=param separated by commas, e.g. type=ipv4 or \"byterangelength=1 10\".",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := args[0]
			if err := v.CheckTag(tag); err != nil {
				return err
			}

			return check(cmd.OutOrStdout(), v, tag, args[1:])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().SetInterspersed(false)
	root.AddCommand(newRulesCmd(v))
	return root
}

func newRulesCmd(v *fieldrules.Validate) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered rules and their priority",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range v.RuleNames() {
				rule, _ := v.Rule(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, rule.Priority)
			}
		},
	}
}

// check prints one line per value and reports errInvalidValues if any failed.
func check(w io.Writer, v *fieldrules.Validate, tag string, values []string) error {
	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed)
	var failed bool
	for _, value := range values {
		err := v.Var(value, tag)
		if err == nil {
			okColor.Fprintf(w, "%s: ok\n", value)
			continue
		}

		failed = true
		var verrs fieldrules.ValidationErrors
		if !errors.As(err, &verrs) {
			failColor.Fprintf(w, "%s: %v\n", value, err)
			continue
		}

		for _, msg := range verrs.Messages() {
			failColor.Fprintf(w, "%s: %s\n", value, msg)
		}
	}

	if failed {
		return errInvalidValues
	}

	return nil
}
