package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenDeleteExperienceRestoresList(t *testing.T) {
	doc := sampleResume()
	before := doc.Clone()

	id := doc.AddExperience(NewCounterGenerator("n-"))
	require.Len(t, doc.Experiences, 3)
	assert.Equal(t, "n-1", doc.Experiences[2].ID)

	assert.True(t, doc.DeleteExperience(id))
	assert.Equal(t, before.Experiences, doc.Experiences)
}

func TestDeleteUsesIDNotIndex(t *testing.T) {
	doc := sampleResume()

	assert.True(t, doc.DeleteExperience("exp-1"))
	require.Len(t, doc.Experiences, 1)
	assert.Equal(t, "exp-2", doc.Experiences[0].ID)
	assert.False(t, doc.DeleteExperience("exp-1"))
}

func TestCounterIDsAreNeverReused(t *testing.T) {
	doc := Default()
	ids := NewCounterGenerator("x-")
	first := doc.AddEducation(ids)
	doc.DeleteEducation(first)
	second := doc.AddEducation(ids)
	assert.NotEqual(t, first, second)
}

func TestEditItemSplitsAchievements(t *testing.T) {
	doc := sampleResume()

	require.NoError(t, doc.EditItem("experiences[1].achievements", "  Led team \n\n Cut costs\n   "))
	assert.Equal(t, []string{"Led team", "Cut costs"}, doc.Experiences[1].Achievements)

	require.NoError(t, doc.EditItem("education[0].field_of_study", "Math"))
	assert.Equal(t, "Math", doc.Education[0].FieldOfStudy)
}

func TestEditItemRejectsBadPaths(t *testing.T) {
	doc := sampleResume()

	assert.ErrorIs(t, doc.EditItem("experiences[9].company", "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, doc.EditItem("experiences.company", "x"), ErrInvalidPath)
	assert.ErrorIs(t, doc.EditItem("experiences[0].salary", "x"), ErrInvalidPath)
}

func TestAddSkillRejectsDuplicates(t *testing.T) {
	doc := sampleResume()

	assert.False(t, doc.AddSkill(SkillTechnical, "Go"))
	assert.False(t, doc.AddSkill(SkillTechnical, "  "))
	assert.True(t, doc.AddSkill(SkillTechnical, " Docker "))
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, doc.Skills.Technical)

	// same value in another category is allowed
	assert.True(t, doc.AddSkill(SkillSoft, "Go"))
}

func TestRemoveSkillExactMatch(t *testing.T) {
	doc := sampleResume()

	assert.False(t, doc.RemoveSkill(SkillTechnical, "go"))
	assert.True(t, doc.RemoveSkill(SkillTechnical, "Go"))
	assert.Equal(t, []string{"SQL"}, doc.Skills.Technical)
}
