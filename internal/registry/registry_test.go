package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rail44/gemrun/internal/log"
)

const defaultModel = "gemini-2.0-flash"

type fakeLister struct {
	models []string
	err    error
	calls  int
}

func (f *fakeLister) ListModels(ctx context.Context) ([]string, error) {
	f.calls++
	return f.models, f.err
}

func newTestRegistry(t *testing.T, lister ModelLister) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.json")
	return New(Options{
		DefaultModel: defaultModel,
		Store:        NewFileStore(path),
		Models:       lister,
		Logger:       log.Discard(),
	}), path
}

func TestRegisterWithSupportedModel(t *testing.T) {
	lister := &fakeLister{models: []string{"gemini-2.0-flash", "gemini-2.5-pro"}}
	r, _ := newTestRegistry(t, lister)

	require.NoError(t, r.Register(context.Background(), "summarize", "gemini-2.5-pro", "Summarize input."))

	c, err := r.Lookup("summarize")
	require.NoError(t, err)
	require.Equal(t, "gemini-2.5-pro", c.Model)
	require.Equal(t, "Summarize input.", c.SystemInstruction)
	require.Equal(t, 1, lister.calls)
}

func TestRegisterWithoutModelUsesDefault(t *testing.T) {
	lister := &fakeLister{}
	r, _ := newTestRegistry(t, lister)

	require.NoError(t, r.Register(context.Background(), "fix", "", ""))

	c, err := r.Lookup("fix")
	require.NoError(t, err)
	require.Equal(t, defaultModel, c.Model)
	require.Equal(t, "", c.SystemInstruction)
	require.Zero(t, lister.calls, "default model must not trigger a remote call")
}

func TestRegisterUnsupportedModelLeavesRegistryUnchanged(t *testing.T) {
	lister := &fakeLister{models: []string{"gemini-2.0-flash"}}
	r, _ := newTestRegistry(t, lister)
	require.NoError(t, r.Register(context.Background(), "x", "", "first"))

	err := r.Register(context.Background(), "x", "gemini-9000", "second")

	var notFound *ModelNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "gemini-9000", notFound.Model)

	err = r.Register(context.Background(), "y", "gemini-9000", "")
	require.ErrorAs(t, err, &notFound)

	require.Equal(t, []Command{{Name: "x", Model: defaultModel, SystemInstruction: "first"}}, r.List())
}

func TestRegisterPropagatesListerFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	r, _ := newTestRegistry(t, &fakeLister{err: boom})

	err := r.Register(context.Background(), "x", "gemini-2.0-flash", "")
	require.ErrorIs(t, err, boom)
	require.Empty(t, r.List())
}

func TestRegisterEmptyName(t *testing.T) {
	r, _ := newTestRegistry(t, &fakeLister{})
	require.ErrorIs(t, r.Register(context.Background(), "", "", "x"), ErrEmptyName)
}

func TestReRegisterOverwrites(t *testing.T) {
	r, _ := newTestRegistry(t, &fakeLister{})
	ctx := context.Background()

	require.NoError(t, r.Register(ctx, "a", "", "one"))
	require.NoError(t, r.Register(ctx, "x", "", "first"))
	require.NoError(t, r.Register(ctx, "x", "", "second"))

	c, err := r.Lookup("x")
	require.NoError(t, err)
	require.Equal(t, "second", c.SystemInstruction)
	require.Equal(t, []string{"a", "x"}, r.Names(), "overwrite keeps the original position")
}

func TestLookupMissing(t *testing.T) {
	r, _ := newTestRegistry(t, &fakeLister{})

	_, err := r.Lookup("missing")

	var notFound *CommandNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.Name)
	require.Equal(t, `command "missing" not found`, err.Error())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lister := &fakeLister{models: []string{"gemini-2.5-pro"}}
	r, path := newTestRegistry(t, lister)
	ctx := context.Background()

	require.NoError(t, r.Register(ctx, "summarize", "", "Summarize input."))
	require.NoError(t, r.Register(ctx, "review", "gemini-2.5-pro", "Review this code."))
	require.NoError(t, r.Register(ctx, "echo", "", ""))
	require.NoError(t, r.Save())

	fresh := New(Options{
		DefaultModel: "other-default",
		Store:        NewFileStore(path),
		Logger:       log.Discard(),
	})
	require.NoError(t, fresh.Load())

	require.Equal(t, r.List(), fresh.List())
}

func TestLoadMissingStoreIsEmpty(t *testing.T) {
	r, _ := newTestRegistry(t, &fakeLister{})

	require.NoError(t, r.Load())
	require.Empty(t, r.List())
	require.NotNil(t, r.Names())
}

func TestLoadMergesIntoExisting(t *testing.T) {
	r, path := newTestRegistry(t, &fakeLister{})
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Save([]Command{
		{Name: "x", Model: "gemini-1.5-pro", SystemInstruction: "stored"},
		{Name: "legacy", SystemInstruction: "no model"},
	}))

	require.NoError(t, r.Register(ctx, "x", "", "in memory"))
	require.NoError(t, r.Register(ctx, "keep", "", "untouched"))
	require.NoError(t, r.Load())

	x, err := r.Lookup("x")
	require.NoError(t, err)
	require.Equal(t, "stored", x.SystemInstruction)
	require.Equal(t, "gemini-1.5-pro", x.Model)

	legacy, err := r.Lookup("legacy")
	require.NoError(t, err)
	require.Equal(t, defaultModel, legacy.Model)

	_, err = r.Lookup("keep")
	require.NoError(t, err)
}

func TestLoadRejectsUnnamedRecord(t *testing.T) {
	r, path := newTestRegistry(t, &fakeLister{})
	require.NoError(t, NewFileStore(path).Save([]Command{{Model: "m"}}))

	require.ErrorIs(t, r.Load(), ErrEmptyName)
}

func TestSaveWithoutStore(t *testing.T) {
	r := New(Options{DefaultModel: defaultModel, Logger: log.Discard()})
	require.Error(t, r.Save())
	require.NoError(t, r.Load())
}
