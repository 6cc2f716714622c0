package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommand(t *testing.T) {
	for _, id := range []string{"offheap", "arena", "heap"} {
		t.Run(id, func(t *testing.T) {
			resetFlags(t)
			jsonOut = true
			processor = id
			demoCount, demoSize = 50, 128

			output, err := captureOutput(t, runDemo)
			require.NoError(t, err)

			var res demoResult
			decodeJSON(t, output, &res)
			assert.Equal(t, 50, res.Count)

			switch id {
			case "offheap":
				assert.Equal(t, int64(50), res.Allocated.Backend["live"])
				assert.Zero(t, res.Released.Backend["live"])
				assert.Equal(t, int64(50), res.Released.Backend["total_alloc"])
			case "arena":
				assert.Equal(t, int64(50), res.Allocated.Backend["live_slots"])
				assert.Zero(t, res.Released.Backend["live_slots"])
			default:
				assert.Equal(t, int64(50), res.Allocated.Backend["live"])
				assert.Zero(t, res.Released.Backend["live"])
			}
		})
	}
}

func TestDemoRejectsNegative(t *testing.T) {
	resetFlags(t)
	demoCount = -1
	_, err := captureOutput(t, runDemo)
	require.Error(t, err)
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"upper", "lower", "split", "hash", "backends", "demo", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, runVersion)
	require.NoError(t, err)

	var v versionInfo
	decodeJSON(t, output, &v)
	assert.Equal(t, "dev", v.Version)
	assert.NotEmpty(t, v.Go)
}
