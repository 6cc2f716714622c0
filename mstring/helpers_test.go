package mstring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/strkit/mstring"
	"github.com/joshuapare/strkit/storage"
	"github.com/joshuapare/strkit/storage/offheap"
)

func newFactory(t *testing.T, p storage.Processor) *mstring.Factory {
	t.Helper()
	if p == nil {
		p = offheap.New()
	}
	return mstring.NewFactory(p)
}

// mustString builds s on f and releases it when the test ends.
func mustString(t *testing.T, f *mstring.Factory, s string) *mstring.String {
	t.Helper()
	str, err := f.FromString(s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = str.Release() })
	return str
}

func requireBounds(t *testing.T, err error, value int) {
	t.Helper()
	require.ErrorIs(t, err, mstring.ErrBounds)
	var e *mstring.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, value, e.Value)
}

func texts(parts []mstring.Text) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}
	return out
}
