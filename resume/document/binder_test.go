package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPathCreatesIntermediateLevels(t *testing.T) {
	tree := map[string]any{}

	require.NoError(t, SetPath(tree, "personal.email", "a@b.c"))

	val, ok := GetPath(tree, "personal.email")
	require.True(t, ok)
	assert.Equal(t, "a@b.c", val)
}

func TestGetPathMissingLeafMapping(t *testing.T) {
	_, ok := GetPath(map[string]any{"summary": "x"}, "personal.email")
	assert.False(t, ok)
}

func TestSetPathListIndex(t *testing.T) {
	tree := map[string]any{"experiences": []any{map[string]any{"company": "A"}}}

	require.NoError(t, SetPath(tree, "experiences[0].company", "B"))
	assert.ErrorIs(t, SetPath(tree, "experiences[3].company", "B"), ErrIndexOutOfRange)

	val, ok := GetPath(tree, "experiences[0].company")
	require.True(t, ok)
	assert.Equal(t, "B", val)
}

func TestBinderRoundTrip(t *testing.T) {
	binder := NewBinder(DefaultBindings())
	doc := Default()

	require.NoError(t, binder.OnChange(&doc, "email", "jane@example.com"))
	require.NoError(t, binder.OnChange(&doc, "summary", "Hello"))
	assert.Equal(t, "jane@example.com", doc.Personal.Email)

	inputs := map[string]string{}
	binder.Populate(doc, inputs)
	assert.Equal(t, "jane@example.com", inputs["email"])
	assert.Equal(t, "Hello", inputs["summary"])
	assert.Equal(t, "blue", inputs["colorScheme"])
}

func TestBinderPopulateLeavesUnresolvedInputs(t *testing.T) {
	binder := NewBinder(map[string]string{"nickname": "personal.nickname", "ghost": "missing.leaf"})
	inputs := map[string]string{"ghost": "keep me"}

	binder.Populate(Default(), inputs)

	assert.Equal(t, "keep me", inputs["ghost"])
	assert.NotContains(t, inputs, "nickname")
}

func TestSetFieldTypeMismatchLeavesDocument(t *testing.T) {
	doc := sampleResume()
	before := doc.Clone()

	err := doc.SetField("personal.email", 42)
	assert.Error(t, err)
	assert.Equal(t, before, doc)
}
