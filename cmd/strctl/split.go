package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var splitLimit int

func init() {
	cmd := newSplitCmd()
	cmd.Flags().IntVar(&splitLimit, "limit", 0, "Maximum pieces (0 drops trailing empties, <0 keeps all)")
	rootCmd.AddCommand(cmd)
}

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <text> <regex>",
		Short: "Split text around regular expression matches",
		Long: `The split command splits a managed string around matches of a
regular expression. Single literal characters take a fast path that never
compiles a pattern.

Example:
  strctl split a,b,,c, ,
  strctl split a.b.c '\.' --limit 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(args)
		},
	}
}

func runSplit(args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := factoryFor(e)
	if err != nil {
		return err
	}
	s, err := f.FromString(args[0])
	if err != nil {
		return fmt.Errorf("failed to build string: %w", err)
	}
	defer s.Release()

	parts, err := s.Split(args[1], splitLimit)
	if err != nil {
		return err
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}

	if jsonOut {
		return printJSON(out)
	}
	printVerbose("%d piece(s)\n", len(out))
	for _, p := range out {
		printInfo("%s\n", p)
	}
	return nil
}
