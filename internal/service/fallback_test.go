package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casaflow/community-service/internal/domain"
)

func TestFallbackBreakageWordsYieldIssue(t *testing.T) {
	cases := []string{
		"the hallway light is broken",
		"elevator not working since yesterday",
		"damaged door in the lobby",
		"faulty socket in the kitchen",
	}
	for _, description := range cases {
		result := fallbackClassify(RequestInput{Description: description})
		assert.True(t, result.IsIssue, "description %q should classify as issue", description)
		assert.True(t, result.HasValidInformation)
		assert.True(t, result.UsedFallback)
	}
}

func TestFallbackServiceWordsWithoutBreakageYieldService(t *testing.T) {
	result := fallbackClassify(RequestInput{Description: "weekly deep cleaning for the apartment please"})

	assert.False(t, result.IsIssue)
	assert.Equal(t, domain.ServiceCleaning, result.ServiceCategory)
	assert.Equal(t, domain.SkillCleaning, result.RequiredSkill)
}

func TestFallbackTieBreakOnFixYieldsIssue(t *testing.T) {
	result := fallbackClassify(RequestInput{Description: "please fix the wobbly door handle"})

	assert.True(t, result.IsIssue)
}

func TestFallbackTieBreakWithoutFixYieldsService(t *testing.T) {
	result := fallbackClassify(RequestInput{Description: "would like new curtains for the window frames"})

	assert.False(t, result.IsIssue)
}

func TestFallbackPriorityKeywords(t *testing.T) {
	cases := map[string]domain.Priority{
		"urgent water leak flooding the bathroom":  domain.PriorityP1,
		"emergency, sparks from the power socket":  domain.PriorityP1,
		"important, the gate lock needs fixing":    domain.PriorityP2,
		"tap drips a little, no rush at all":       domain.PriorityP4,
		"whenever you get a chance, check the ac":  domain.PriorityP4,
		"bathroom tap is leaking badly":            domain.PriorityP3,
		"the fridge is making an odd noise lately": domain.PriorityP3,
	}
	for description, want := range cases {
		result := fallbackClassify(RequestInput{Description: description})
		assert.Equal(t, want, result.Priority, "description %q", description)
	}
}

func TestFallbackPlumbingScenario(t *testing.T) {
	input := RequestInput{
		Description: "bathroom tap is leaking badly",
		Location:    "Room 12",
		TypeHint:    "Plumbing",
	}

	result := fallbackClassify(input)

	assert.True(t, result.HasValidInformation)
	assert.True(t, result.IsIssue)
	assert.Equal(t, domain.IssuePlumbing, result.IssueCategory)
	assert.Equal(t, domain.SkillPlumbing, result.RequiredSkill)
	assert.Equal(t, domain.PriorityP3, result.Priority)
	assert.Equal(t, "bathroom tap is leaking badly", result.Title)
}

func TestFallbackFamilyOrderCleaningBeforeElectrical(t *testing.T) {
	// "cleaning the light fixtures" matches both families; cleaning wins by
	// fixed priority order.
	result := fallbackClassify(RequestInput{Description: "need cleaning of all the light fixtures"})

	assert.Equal(t, domain.SkillCleaning, result.RequiredSkill)
}

func TestFallbackUnmatchedTextGetsGeneralMaintenance(t *testing.T) {
	result := fallbackClassify(RequestInput{Description: "something strange needs repair attention"})

	assert.Equal(t, domain.SkillGeneralMaintenance, result.RequiredSkill)
	if result.IsIssue {
		assert.Equal(t, domain.IssueOther, result.IssueCategory)
	} else {
		assert.Equal(t, domain.ServiceOther, result.ServiceCategory)
	}
}

func TestFallbackOnlyVariantCategorySurvives(t *testing.T) {
	issue := fallbackClassify(RequestInput{Description: "broken water pipe in the basement"})
	assert.True(t, issue.IsIssue)
	assert.NotEmpty(t, issue.IssueCategory)
	assert.Empty(t, issue.ServiceCategory)

	svc := fallbackClassify(RequestInput{Description: "monthly maintenance for the garden area"})
	assert.False(t, svc.IsIssue)
	assert.NotEmpty(t, svc.ServiceCategory)
	assert.Empty(t, svc.IssueCategory)
}

func TestDeriveTitleTruncatesLongDescriptions(t *testing.T) {
	long := "the air conditioning unit in the living room has been making a loud rattling noise and dripping water"

	title := deriveTitle(RequestInput{Description: long})

	assert.LessOrEqual(t, len(title), 64)
	assert.Contains(t, title, "...")
}
