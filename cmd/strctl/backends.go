package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/strkit/registry"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/arena"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/joshuapare/strkit/storage/offheap"
)

func init() {
	rootCmd.AddCommand(newBackendsCmd())
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered storage processors",
		Long: `The backends command lists the processors registered by the current
configuration together with their allocation counters.

Example:
  strctl backends
  strctl backends --config strkit.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackends()
		},
	}
}

type backendInfo struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Default bool             `json:"default"`
	Stats   map[string]int64 `json:"stats,omitempty"`
}

// backendStats flattens the counters of processors that keep any.
func backendStats(p storage.Processor) map[string]int64 {
	switch p := p.(type) {
	case *offheap.Processor:
		st := p.Stats()
		return map[string]int64{
			"live":        st.Live,
			"live_bytes":  st.LiveBytes,
			"total_alloc": st.TotalAlloc,
		}
	case *heap.Processor:
		return map[string]int64{"live": p.Live()}
	case *arena.Processor:
		st := p.Stats()
		return map[string]int64{
			"chunks":       int64(st.Chunks),
			"live_slots":   st.LiveSlots,
			"mapped_bytes": st.MappedBytes,
		}
	}
	return nil
}

// formatStats renders stats as space-separated key=value pairs in key order.
func formatStats(stats map[string]int64) string {
	keys := slices.Sorted(maps.Keys(stats))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, stats[k])
	}
	return strings.Join(parts, " ")
}

func listBackends(e *registry.Engine) ([]backendInfo, error) {
	def := e.Config().Processors.Default
	var out []backendInfo
	for _, id := range e.IDs() {
		f, err := e.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, backendInfo{
			ID:      id,
			Type:    fmt.Sprintf("%T", f.Processor()),
			Default: id == def,
			Stats:   backendStats(f.Processor()),
		})
	}
	return out, nil
}

func runBackends() error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	infos, err := listBackends(e)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(infos)
	}
	for _, b := range infos {
		mark := " "
		if b.Default {
			mark = "*"
		}
		printInfo("%s %-8s %s\n", mark, b.ID, b.Type)
		if len(b.Stats) > 0 {
			printVerbose("    %s\n", formatStats(b.Stats))
		}
	}
	return nil
}
