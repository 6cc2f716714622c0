package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		upper     bool
		locale    string
		processor string
		want      string
		wantErr   bool
	}{
		{name: "upper sharp s", args: []string{"straße"}, upper: true, want: "STRASSE"},
		{name: "upper turkish", args: []string{"istanbul"}, upper: true, locale: "tr", want: "İSTANBUL"},
		{name: "upper joins args", args: []string{"a", "b"}, upper: true, want: "A B"},
		{name: "lower final sigma", args: []string{"ΟΔΟΣ"}, want: "οδος"},
		{name: "lower turkish", args: []string{"ISPARTA"}, locale: "tr", want: "ısparta"},
		{name: "lower on heap", args: []string{"MiXeD"}, processor: "heap", want: "mixed"},
		{name: "lower on arena", args: []string{"MiXeD"}, processor: "arena", want: "mixed"},
		{name: "unknown processor", args: []string{"x"}, processor: "gpu", wantErr: true},
		{name: "bad locale", args: []string{"x"}, locale: "not a locale!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			convertLocale = tt.locale
			processor = tt.processor

			output, err := captureOutput(t, func() error {
				return runConvert(tt.args, tt.upper)
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", output)
		})
	}
}

func TestConvertJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runConvert([]string{"already upper"}, false)
	})
	require.NoError(t, err)

	var res convertResult
	decodeJSON(t, output, &res)
	assert.Equal(t, "already upper", res.Output)
	assert.False(t, res.Changed)
	assert.Equal(t, "und", res.Locale)
	assert.Equal(t, "*offheap.Processor", res.Processor)
}

func TestQuietSuppressesOutput(t *testing.T) {
	resetFlags(t)
	quiet = true

	output, err := captureOutput(t, func() error {
		return runConvert([]string{"x"}, true)
	})
	require.NoError(t, err)
	assert.Empty(t, output)
}
