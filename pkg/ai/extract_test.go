package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractArray(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		raw, err := ExtractArray(`[{"a":1},{"a":2}]`)
		require.NoError(t, err)
		require.Equal(t, `[{"a":1},{"a":2}]`, raw)
	})

	t.Run("array inside prose", func(t *testing.T) {
		raw, err := ExtractArray("Here are your questions:\n```json\n[1, 2, 3]\n```\nEnjoy!")
		require.NoError(t, err)
		require.Equal(t, "[1, 2, 3]", raw)
	})

	t.Run("brackets inside strings are ignored", func(t *testing.T) {
		raw, err := ExtractArray(`noise ["a ] tricky", "b [ more"] trailing`)
		require.NoError(t, err)
		require.Equal(t, `["a ] tricky", "b [ more"]`, raw)
	})

	t.Run("escaped quotes", func(t *testing.T) {
		raw, err := ExtractArray(`["she said \"hi]\""]`)
		require.NoError(t, err)
		require.Equal(t, `["she said \"hi]\""]`, raw)
	})

	t.Run("nested arrays", func(t *testing.T) {
		raw, err := ExtractArray(`[[1,2],[3,[4]]]`)
		require.NoError(t, err)
		require.Equal(t, `[[1,2],[3,[4]]]`, raw)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := ExtractArray("nothing here")
		require.ErrorIs(t, err, ErrNoJSON)
	})

	t.Run("unbalanced", func(t *testing.T) {
		_, err := ExtractArray(`[1, 2`)
		require.ErrorIs(t, err, ErrNoJSON)
	})
}

func TestExtractObject(t *testing.T) {
	t.Run("object inside prose", func(t *testing.T) {
		raw, err := ExtractObject(`Sure! {"title": "Algebra", "nested": {"x": 1}} hope that helps`)
		require.NoError(t, err)
		require.Equal(t, `{"title": "Algebra", "nested": {"x": 1}}`, raw)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractObject("[1,2,3]")
		require.ErrorIs(t, err, ErrNoJSON)
	})
}
