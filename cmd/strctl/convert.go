package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/strkit/mstring"
)

var convertLocale string

func init() {
	for _, cmd := range []*cobra.Command{newUpperCmd(), newLowerCmd()} {
		cmd.Flags().StringVarP(&convertLocale, "locale", "l", "", "BCP 47 locale (default from config)")
		rootCmd.AddCommand(cmd)
	}
}

func newUpperCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upper <text>...",
		Short: "Convert text to upper case",
		Long: `The upper command builds a managed string from its arguments and
converts it to upper case using the locale rules (Turkish dotted I, German
sharp s expansion and so on).

Example:
  strctl upper straße
  strctl upper --locale tr istanbul`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args, true)
		},
	}
}

func newLowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lower <text>...",
		Short: "Convert text to lower case",
		Long: `The lower command builds a managed string from its arguments and
converts it to lower case, applying final sigma and locale rules.

Example:
  strctl lower ΟΔΟΣ
  strctl lower --locale tr ISPARTA`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args, false)
		},
	}
}

type convertResult struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Locale    string `json:"locale"`
	Processor string `json:"processor"`
	Changed   bool   `json:"changed"`
}

func runConvert(args []string, upper bool) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := factoryFor(e)
	if err != nil {
		return err
	}
	tag, err := resolveLocale(e, convertLocale)
	if err != nil {
		return err
	}

	s, err := f.FromString(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to build string: %w", err)
	}
	defer s.Release()

	var out mstring.Text
	if upper {
		out = s.ToUpper(tag)
	} else {
		out = s.ToLower(tag)
	}

	printVerbose("Processor: %T, locale: %s\n", f.Processor(), tag)

	res := convertResult{
		Input:     s.String(),
		Output:    out.String(),
		Locale:    tag.String(),
		Processor: fmt.Sprintf("%T", f.Processor()),
		Changed:   !s.Equals(out),
	}
	if jsonOut {
		return printJSON(res)
	}
	printInfo("%s\n", res.Output)
	return nil
}
