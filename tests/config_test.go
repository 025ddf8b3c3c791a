package tests_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/aretw0/configstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeID = "configstore-test"

// openStore points a fresh store at an isolated XDG_CONFIG_HOME.
func openStore(t *testing.T, defaults configstore.Document, opts ...configstore.Option) *configstore.Store {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := configstore.New(storeID, defaults, opts...)
	require.NoError(t, err)
	return store
}

func TestStore_SetAndGet(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, store.Set(ctx, "baz.boo", true))
	require.NoError(t, store.Set(ctx, "obj", map[string]any{"nested": "value"}))

	foo, err := store.Get(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", foo)

	boo, err := store.Get(ctx, "baz.boo")
	require.NoError(t, err)
	assert.Equal(t, true, boo)

	obj, err := store.Get(ctx, "obj")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": "value"}, obj)
}

func TestStore_SetMapping(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.SetAll(ctx, map[string]any{"foo1": "bar1", "foo2": "bar2", "baz.boo": true}))

	for path, want := range map[string]any{"foo1": "bar1", "foo2": "bar2", "baz.boo": true} {
		got, err := store.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}

func TestStore_Has(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", 1.5))
	require.NoError(t, store.Set(ctx, "baz.boo", true))

	for path, want := range map[string]bool{"foo": true, "baz.boo": true, "missing": false, "baz.foo": false} {
		has, err := store.Has(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, want, has, path)
	}
}

func TestStore_Delete(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, store.Set(ctx, "baz.boo", true))
	require.NoError(t, store.Set(ctx, "baz.foo.bar", "baz"))
	require.NoError(t, store.Set(ctx, "baz.foo.zoo", "kek"))

	require.NoError(t, store.Delete(ctx, "foo"))
	require.NoError(t, store.Delete(ctx, "baz.boo"))
	require.NoError(t, store.Delete(ctx, "baz.foo.bar"))

	foo, err := store.Get(ctx, "foo")
	require.NoError(t, err)
	assert.NotEqual(t, "bar", foo)

	has, err := store.Has(ctx, "baz.boo")
	require.NoError(t, err)
	assert.False(t, has)

	zoo, err := store.Get(ctx, "baz.foo.zoo")
	require.NoError(t, err)
	assert.Equal(t, "kek", zoo)
}

func TestStore_Clear(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, store.Set(ctx, "foo1", "bar1"))
	require.NoError(t, store.Set(ctx, "baz.boo", true))
	require.NoError(t, store.Clear(ctx))

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, configstore.Document{}, all)
}

func TestStore_All(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, store.Set(ctx, "baz.boo", true))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bar", all["foo"])
	assert.Equal(t, true, all["baz"].(map[string]any)["boo"])

	require.NoError(t, store.SaveAll(ctx, configstore.Document{"replaced": true}))
	all, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, configstore.Document{"replaced": true}, all)
}

func TestStore_Size(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestStore_Path(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "construction alone must not create the file")

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "configstore", storeID+".json"), store.Path())
}

func TestStore_Defaults(t *testing.T) {
	store := openStore(t, configstore.Document{"foo": "bar"})

	foo, err := store.Get(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", foo)
}

func TestStore_GlobalConfigPath(t *testing.T) {
	store := openStore(t, configstore.Document{}, configstore.WithGlobalConfigPath(true))

	assert.Regexp(t, regexp.MustCompile(`configstore-test(/|\\)config\.json$`), store.Path())
}

func TestStore_ConfigPath(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "nested", "custom.json")
	store := openStore(t, nil, configstore.WithConfigPath(custom))
	ctx := context.Background()

	assert.Equal(t, custom, store.Path())
	require.NoError(t, store.Set(ctx, "foo", "bar"))

	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"foo\": \"bar\"\n}", string(data))
}

func TestStore_AlwaysAnObject(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, os.Remove(store.Path()))

	assert.NotPanics(t, func() {
		v, err := store.Get(ctx, "foo")
		assert.NoError(t, err)
		assert.Nil(t, v)
	})

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "reads must not recreate the file")
}

func TestStore_CorruptFileRecovery(t *testing.T) {
	store := openStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "foo", "bar"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{this is not json"), 0o600))

	v, err := store.Get(ctx, "foo")
	require.NoError(t, err)
	assert.Nil(t, v)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, store.Set(ctx, "foo", "again"))
	v, err = store.Get(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "again", v)
}

func TestStore_YAMLFormat(t *testing.T) {
	store := openStore(t, configstore.Document{"foo": "bar"}, configstore.WithFormat("yaml"))
	ctx := context.Background()

	assert.Equal(t, ".yml", filepath.Ext(store.Path()))
	require.NoError(t, store.Set(ctx, "baz.boo", true))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "baz:\n  boo: true\nfoo: bar\n", string(data))
}

func TestStore_Unserializable(t *testing.T) {
	ctx := context.Background()

	t.Run("Fails Loudly By Default", func(t *testing.T) {
		store := openStore(t, nil)
		err := store.Set(ctx, "fn", func() {})
		assert.ErrorIs(t, err, configstore.ErrUnserializable)
	})

	t.Run("Lenient Skips The Field", func(t *testing.T) {
		store := openStore(t, nil, configstore.WithLenient(true))
		require.NoError(t, store.Set(ctx, "ok", "yes"))
		require.NoError(t, store.Set(ctx, "fn", func() {}))

		has, err := store.Has(ctx, "fn")
		require.NoError(t, err)
		assert.False(t, has)

		ok, err := store.Get(ctx, "ok")
		require.NoError(t, err)
		assert.Equal(t, "yes", ok)
	})
}

func TestStore_EmptyID(t *testing.T) {
	_, err := configstore.New("", nil)
	assert.ErrorIs(t, err, configstore.ErrEmptyID)
}
