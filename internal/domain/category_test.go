package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIssueCategory(t *testing.T) {
	for _, c := range IssueCategories() {
		assert.True(t, ValidIssueCategory(c))
	}
	assert.False(t, ValidIssueCategory("GARDENING"))
	assert.False(t, ValidIssueCategory(""))
}

func TestValidServiceCategory(t *testing.T) {
	for _, c := range ServiceCategories() {
		assert.True(t, ValidServiceCategory(c))
	}
	assert.False(t, ValidServiceCategory("DEMOLITION"))
}

func TestValidTechnicianSkill(t *testing.T) {
	for _, s := range TechnicianSkills() {
		assert.True(t, ValidTechnicianSkill(s))
	}
	assert.False(t, ValidTechnicianSkill("WIZARDRY"))
}

func TestRubricsCoverFullVocabularies(t *testing.T) {
	issueRubric := IssueCategoryRubric()
	for _, c := range IssueCategories() {
		assert.Contains(t, issueRubric, string(c))
	}

	serviceRubric := ServiceCategoryRubric()
	for _, c := range ServiceCategories() {
		assert.Contains(t, serviceRubric, string(c))
	}

	skillRubric := SkillRubric()
	for _, s := range TechnicianSkills() {
		assert.Contains(t, skillRubric, string(s))
	}
}

func TestPriorityRubricHasOneLinePerLevel(t *testing.T) {
	rubric := PriorityRubric()

	lines := strings.Split(rubric, "\n")
	assert.Len(t, lines, len(Priorities()))
	for i, p := range Priorities() {
		assert.True(t, strings.HasPrefix(lines[i], string(p)+": "))
		assert.NotEmpty(t, PriorityDescription(p))
	}
}
