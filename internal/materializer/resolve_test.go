package materializer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct{ id, value string }

type recordMap map[string]record

func (m recordMap) load(_ context.Context, id string) (*record, error) {
	r, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m recordMap) save(_ context.Context, r *record) error {
	m[r.id] = *r
	return nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("existing entity is not recreated", func(t *testing.T) {
		m := recordMap{"a": {id: "a", value: "stored"}}
		got, created, err := resolve(ctx, "a", m.load, func(context.Context) (*record, error) {
			t.Fatal("create must not be called")
			return nil, nil
		}, m.save)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "stored", got.value)
	})

	t.Run("absent entity is created and saved", func(t *testing.T) {
		m := recordMap{}
		got, created, err := resolve(ctx, "a", m.load, func(context.Context) (*record, error) {
			return &record{id: "a", value: "fresh"}, nil
		}, m.save)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "fresh", got.value)
		assert.Equal(t, "fresh", m["a"].value)
	})

	t.Run("create error skips save", func(t *testing.T) {
		m := recordMap{}
		boom := errors.New("boom")
		_, _, err := resolve(ctx, "a", m.load, func(context.Context) (*record, error) {
			return nil, boom
		}, func(context.Context, *record) error {
			t.Fatal("save must not be called")
			return nil
		})

		assert.ErrorIs(t, err, boom)
		assert.Empty(t, m)
	})

	t.Run("load error", func(t *testing.T) {
		boom := errors.New("db down")
		_, _, err := resolve(ctx, "a",
			func(context.Context, string) (*record, error) { return nil, boom },
			func(context.Context) (*record, error) { return nil, nil },
			recordMap{}.save)

		assert.ErrorIs(t, err, boom)
	})
}
