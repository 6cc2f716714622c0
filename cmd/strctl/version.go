package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionInfo struct {
	Version string            `json:"version"`
	Commit  string            `json:"commit"`
	Built   string            `json:"built"`
	Go      string            `json:"go"`
	Deps    map[string]string `json:"deps,omitempty"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

func buildVersion() versionInfo {
	v := versionInfo{Version: version, Commit: commit, Built: date, Go: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		v.Deps = make(map[string]string, len(bi.Deps))
		for _, d := range bi.Deps {
			v.Deps[d.Path] = d.Version
		}
	}
	return v
}

func runVersion() error {
	v := buildVersion()
	if jsonOut {
		return printJSON(v)
	}
	printInfo("strctl %s\n", v.Version)
	printInfo("  commit: %s\n", v.Commit)
	printInfo("  built: %s\n", v.Built)
	printInfo("  go: %s\n", v.Go)
	printVerbose("  deps: %d\n", len(v.Deps))
	return nil
}
