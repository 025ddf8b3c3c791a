package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/configstore/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable.
type MockRepository struct {
	doc     core.Document
	saves   int
	loadErr error
	saveErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Load(ctx context.Context) (core.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.doc == nil {
		return core.Document{}, nil
	}
	// Hand out a copy like a real read from disk would.
	return m.doc.Clone(), nil
}

func (m *MockRepository) Save(ctx context.Context, doc core.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.doc = doc.Clone()
	return nil
}

func (m *MockRepository) Path() string { return "/mock/config.json" }

func newStore(t *testing.T) (*core.Store, *MockRepository) {
	t.Helper()
	repo := NewMockRepository()
	store, err := core.NewStore("test", repo)
	require.NoError(t, err)
	return store, repo
}

func TestNewStore(t *testing.T) {
	_, err := core.NewStore("", NewMockRepository())
	assert.ErrorIs(t, err, core.ErrEmptyID)

	_, err = core.NewStore("id", nil)
	assert.Error(t, err)
}

func TestStore_SetGet(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"Scalar", "foo", "bar"},
		{"Object", "obj", map[string]any{"nested": "yes"}},
		{"Boolean", "flag", true},
		{"Nested Path", "baz.boo", 12.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, tc.path, tc.value))
			got, err := store.Get(ctx, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.value, got)
		})
	}

	got, err := store.Get(ctx, "never.set")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SetAll(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "keep", "me"))
	require.NoError(t, store.SetAll(ctx, map[string]any{
		"foo":     "bar",
		"baz.boo": true,
	}))
	assert.Equal(t, 2, repo.saves, "bulk set persists once")

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Document{
		"keep": "me",
		"foo":  "bar",
		"baz":  map[string]any{"boo": true},
	}, all)
}

func TestStore_SetAllNestedDocument(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	nested := core.Document{"b": 1}
	require.NoError(t, store.SetAll(ctx, map[string]any{
		"a":   nested,
		"a.c": 2,
	}))
	assert.Equal(t, core.Document{"b": 1}, nested, "caller's map must not be modified")

	b, err := store.Get(ctx, "a.b")
	require.NoError(t, err)
	assert.Equal(t, 1, b)
	c, err := store.Get(ctx, "a.c")
	require.NoError(t, err)
	assert.Equal(t, 2, c)
}

func TestStore_DeleteKeepsSiblings(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo.bar.baz", "x"))
	require.NoError(t, store.Set(ctx, "foo.bar.zoo", "y"))
	require.NoError(t, store.Delete(ctx, "foo.bar.baz"))

	has, err := store.Has(ctx, "foo.bar.baz")
	require.NoError(t, err)
	assert.False(t, has)

	got, err := store.Get(ctx, "foo.bar.zoo")
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	assert.NoError(t, store.Delete(ctx, "does.not.exist"))
}

func TestStore_Has(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a.b", nil))

	for path, want := range map[string]bool{"a": true, "a.b": true, "a.c": false, "z": false} {
		has, err := store.Has(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, want, has, path)
	}
}

func TestStore_ClearAndSize(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, store.Set(ctx, "foo1.nested", "bar1"))

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	require.NoError(t, store.Clear(ctx))

	size, err = store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Document{}, all)
}

func TestStore_SaveAll(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "old", "value"))
	require.NoError(t, store.SaveAll(ctx, core.Document{"new": "value"}))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Document{"new": "value"}, all)

	require.NoError(t, store.SaveAll(ctx, nil))
	all, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestStore_ApplyDefaults(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "persisted"))
	require.NoError(t, store.ApplyDefaults(ctx, core.Document{"foo": "default", "extra": 1.0}))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Document{"foo": "persisted", "extra": 1.0}, all)
}

func TestStore_Keys(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetAll(ctx, map[string]any{"ui.theme": "dark", "ui.font": 12.0, "name": "x"}))

	keys, err := store.Keys(ctx, "ui.*")
	require.NoError(t, err)
	assert.Equal(t, []string{"ui.font", "ui.theme"}, keys)
}

func TestStore_ErrorsPropagate(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()
	boom := errors.New("disk on fire")

	repo.saveErr = boom
	assert.ErrorIs(t, store.Set(ctx, "foo", "bar"), boom)
	assert.ErrorIs(t, store.Clear(ctx), boom)

	repo.loadErr = boom
	_, err := store.Get(ctx, "foo")
	assert.ErrorIs(t, err, boom)
	_, err = store.Size(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestStore_WatchUnsupported(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Watch(context.Background())
	assert.EqualError(t, err, "repository does not support watching")
}

func TestStore_State(t *testing.T) {
	store, _ := newStore(t)
	state := store.State().(core.StoreState)
	assert.Equal(t, "test", state.ID)
	assert.Equal(t, "/mock/config.json", state.Path)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "store", store.ComponentType())
}

func TestPermissionError(t *testing.T) {
	inner := errors.New("open /x: permission denied")
	err := &core.PermissionError{Path: "/x", Err: inner}

	assert.Equal(t, "open /x: permission denied\n"+core.PermissionHint+"\n", err.Error())
	assert.ErrorIs(t, err, core.ErrPermission)
	assert.ErrorIs(t, err, inner)
}

func TestDocumentClone(t *testing.T) {
	orig := core.Document{"a": map[string]any{"b": []any{"c"}}}
	clone := orig.Clone()
	clone["a"].(map[string]any)["b"].([]any)[0] = "changed"

	assert.Equal(t, "c", orig["a"].(map[string]any)["b"].([]any)[0])
}
