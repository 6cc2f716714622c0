package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/strkit/mstring"
)

var (
	demoCount int
	demoSize  int
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVarP(&demoCount, "count", "n", 1000, "Strings to allocate")
	cmd.Flags().IntVar(&demoSize, "size", 256, "Code units per string")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Allocate strings and compare Go heap use with backend use",
		Long: `The demo command allocates a batch of managed strings on the selected
processor and reports the Go heap and the backend counters before and after,
then releases the batch.

Example:
  strctl demo
  strctl demo -p heap -n 10000 --size 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

type demoSnapshot struct {
	HeapAlloc uint64           `json:"heap_alloc"`
	Backend   map[string]int64 `json:"backend,omitempty"`
}

type demoResult struct {
	Processor string       `json:"processor"`
	Count     int          `json:"count"`
	Size      int          `json:"size"`
	Before    demoSnapshot `json:"before"`
	Allocated demoSnapshot `json:"allocated"`
	Released  demoSnapshot `json:"released"`
}

func runDemo() error {
	if demoCount < 0 || demoSize < 0 {
		return fmt.Errorf("count and size must be non-negative")
	}
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	f, err := factoryFor(e)
	if err != nil {
		return err
	}
	snap := func() demoSnapshot {
		runtime.GC()
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return demoSnapshot{HeapAlloc: ms.HeapAlloc, Backend: backendStats(f.Processor())}
	}

	res := demoResult{
		Processor: fmt.Sprintf("%T", f.Processor()),
		Count:     demoCount,
		Size:      demoSize,
		Before:    snap(),
	}

	src := strings.Repeat("x", demoSize)
	batch := make([]*mstring.String, 0, demoCount)
	for range demoCount {
		s, err := f.FromString(src)
		if err != nil {
			for _, s := range batch {
				_ = s.Release()
			}
			return fmt.Errorf("failed to allocate: %w", err)
		}
		batch = append(batch, s)
	}
	res.Allocated = snap()

	for _, s := range batch {
		if err := s.Release(); err != nil {
			return err
		}
	}
	runtime.KeepAlive(batch)
	res.Released = snap()

	if jsonOut {
		return printJSON(res)
	}
	printInfo("Processor: %s\n", res.Processor)
	printInfo("  %d strings x %d units\n", res.Count, res.Size)
	for _, row := range []struct {
		name string
		s    demoSnapshot
	}{{"before", res.Before}, {"allocated", res.Allocated}, {"released", res.Released}} {
		printInfo("  %-10s heap=%d", row.name, row.s.HeapAlloc)
		if len(row.s.Backend) > 0 {
			printInfo(" %s", formatStats(row.s.Backend))
		}
		printInfo("\n")
	}
	return nil
}
