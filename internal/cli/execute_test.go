package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	events "github.com/hanpama/typegraph/internal/events"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// fakeTracing stands in for otel.Setup: it records document failures the
// way the span subscriber does and whether it was flushed afterwards.
type fakeTracing struct {
	endpoint string
	failures []error
	flushed  int
}

func (f *fakeTracing) setup(endpoint, service string) (func(context.Context) error, error) {
	f.endpoint = endpoint
	eventbus.Subscribe(func(_ context.Context, e events.DocumentFinish) {
		if e.Err != nil {
			f.failures = append(f.failures, e.Err)
		}
	})
	return func(context.Context) error {
		f.flushed++
		return nil
	}, nil
}

func useFakeTracing(t *testing.T) *fakeTracing {
	t.Helper()
	f := &fakeTracing{}
	prev := setupTracing
	setupTracing = f.setup
	t.Cleanup(func() {
		setupTracing = prev
		eventbus.Use(nil)
	})
	return f
}

func runExecute(t *testing.T, schema string, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.graphql"), []byte(schema), 0o644))

	root, opts := newRootCommand(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "typegraph.toml")}, args...))
	return execute(context.Background(), root, opts)
}

func TestExecuteFlushesTracingOnFailure(t *testing.T) {
	f := useFakeTracing(t)

	err := runExecute(t, "type User { id: ID! }\ntype User { id: ID! }", "--otel-endpoint", "localhost:4317", "check")
	assert.True(t, typegraph.IsKind(err, typegraph.KindDuplicateTypeDefinition))

	assert.Equal(t, "localhost:4317", f.endpoint)
	require.Len(t, f.failures, 1)
	assert.Equal(t, 1, f.flushed)
}

func TestExecuteFlushesTracingOnSuccess(t *testing.T) {
	f := useFakeTracing(t)

	require.NoError(t, runExecute(t, "type User { id: ID! }", "--otel-endpoint", "localhost:4317", "check"))
	assert.Empty(t, f.failures)
	assert.Equal(t, 1, f.flushed)
}

func TestExecuteWithoutTracing(t *testing.T) {
	f := useFakeTracing(t)

	require.NoError(t, runExecute(t, "type User { id: ID! }", "check"))
	assert.Empty(t, f.endpoint)
	assert.Zero(t, f.flushed)
}
