package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreNotifiesOnCommit(t *testing.T) {
	store := NewStore(Default(), NewCounterGenerator("s-"))
	var seen []string
	store.Subscribe(func(doc Resume) { seen = append(seen, doc.Personal.FullName) })

	require.NoError(t, store.SetField("personal.full_name", "Ada"))
	assert.Error(t, store.SetField("personal..x", "bad"))

	assert.Equal(t, []string{"Ada"}, seen)
	assert.Equal(t, "Ada", store.Snapshot().Personal.FullName)
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	store := NewStore(sampleResume(), nil)
	snap := store.Snapshot()
	snap.Skills.Technical[0] = "changed"

	assert.Equal(t, "Go", store.Snapshot().Skills.Technical[0])
}

func TestReconcileJSON(t *testing.T) {
	store := NewStore(sampleResume(), NewCounterGenerator("r-"))

	require.NoError(t, store.ReconcileJSON(store.JSON()))
	assert.Equal(t, sampleResume(), store.Snapshot())

	require.NoError(t, store.ReconcileJSON(`{"summary":"edited","experiences":[{"company":"New"}]}`))
	doc := store.Snapshot()
	assert.Equal(t, "edited", doc.Summary)
	require.Len(t, doc.Experiences, 1)
	assert.Equal(t, "r-1", doc.Experiences[0].ID)
	assert.Equal(t, "Jane Doe", doc.Personal.FullName)

	assert.Error(t, store.ReconcileJSON("{broken"))
	assert.Equal(t, "edited", store.Snapshot().Summary)
}

func TestPrepareForSaveDropsRawText(t *testing.T) {
	doc := Load("plain text resume", nil)
	doc.PrepareForSave()
	assert.Equal(t, "plain text resume", doc.RawText)

	doc.Summary = "now structured"
	doc.PrepareForSave()
	assert.Empty(t, doc.RawText)
}
