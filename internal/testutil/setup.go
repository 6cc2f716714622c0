package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/arena"
	"github.com/joshuapare/strkit/storage/heap"
	"github.com/joshuapare/strkit/storage/offheap"
)

// Backend names a processor constructor used by cross-backend tests.
type Backend struct {
	Name string
	New  func(t *testing.T) storage.Processor
}

// Backends returns one constructor per built-in processor.
func Backends() []Backend {
	return []Backend{
		{Name: "heap", New: func(*testing.T) storage.Processor { return heap.New() }},
		{Name: "offheap", New: func(*testing.T) storage.Processor { return offheap.New() }},
		{Name: "arena", New: func(t *testing.T) storage.Processor {
			t.Helper()
			p, err := arena.New(arena.DefaultChunkSize)
			require.NoError(t, err)
			return p
		}},
	}
}
