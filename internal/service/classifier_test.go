package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/observability"
)

type fakeOracle struct {
	reply string
	err   error
	calls int
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestClassifier(oracle *fakeOracle) *Classifier {
	return NewClassifier(oracle, zap.NewNop(), observability.NewMetrics())
}

func TestClassifyParsesOracleReply(t *testing.T) {
	oracle := &fakeOracle{reply: `{
        "has_valid_information": true,
        "is_issue": true,
        "category": "PLUMBING",
        "priority": "P2",
        "title": "Leaking bathroom tap",
        "description": "Tap in room 12 leaking steadily",
        "required_skill": "PLUMBING"
    }`}

	result := newTestClassifier(oracle).Classify(context.Background(), RequestInput{
		Description: "bathroom tap is leaking badly",
		Location:    "Room 12",
		TypeHint:    "Plumbing",
	})

	assert.True(t, result.HasValidInformation)
	assert.True(t, result.IsIssue)
	assert.Equal(t, domain.IssuePlumbing, result.IssueCategory)
	assert.Equal(t, domain.PriorityP2, result.Priority)
	assert.Equal(t, domain.SkillPlumbing, result.RequiredSkill)
	assert.Equal(t, "Leaking bathroom tap", result.Title)
	assert.False(t, result.UsedFallback)
}

func TestClassifyExtractsJSONFromProse(t *testing.T) {
	oracle := &fakeOracle{reply: "Sure! Here is the classification you asked for:\n" +
		`{"has_valid_information": true, "is_issue": false, "category": "CLEANING",` +
		` "priority": "P4", "title": "Weekly cleaning", "description": "Weekly apartment cleaning", "required_skill": "CLEANING"}` +
		"\nLet me know if you need anything else."}

	result := newTestClassifier(oracle).Classify(context.Background(), RequestInput{
		Description: "weekly cleaning service please",
	})

	assert.False(t, result.IsIssue)
	assert.Equal(t, domain.ServiceCleaning, result.ServiceCategory)
	assert.Equal(t, domain.PriorityP4, result.Priority)
	assert.False(t, result.UsedFallback)
}

func TestClassifyPropagatesOracleVeto(t *testing.T) {
	oracle := &fakeOracle{reply: `{"has_valid_information": false, "insufficient_reason": "no actionable problem described"}`}

	result := newTestClassifier(oracle).Classify(context.Background(), RequestInput{
		Description: "long text about the weather and maintenance of good moods",
	})

	assert.False(t, result.HasValidInformation)
	assert.Equal(t, "no actionable problem described", result.InsufficientReason)
	assert.False(t, result.UsedFallback)
}

func TestClassifyFallsBackOnOracleError(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("connection refused")}

	result := newTestClassifier(oracle).Classify(context.Background(), RequestInput{
		Description: "bathroom tap is leaking badly",
		TypeHint:    "Plumbing",
	})

	assert.True(t, result.HasValidInformation)
	assert.True(t, result.UsedFallback)
	assert.Equal(t, domain.IssuePlumbing, result.IssueCategory)
}

func TestClassifyFallsBackOnMalformedReply(t *testing.T) {
	cases := []string{
		"I could not classify this request, sorry.",
		`{"is_issue": true, "category":`,
		`{"has_valid_information": true, "is_issue": true}`,
		`{"has_valid_information": true, "is_issue": true, "category": "PLUMBING", "priority": "P9", "required_skill": "PLUMBING"}`,
		`{"has_valid_information": true, "is_issue": true, "category": "NOT_A_CATEGORY", "priority": "P2", "required_skill": "PLUMBING"}`,
		`{"has_valid_information": true, "is_issue": true, "category": "PLUMBING", "priority": "P2", "required_skill": "WIZARDRY"}`,
	}
	for _, reply := range cases {
		oracle := &fakeOracle{reply: reply}
		result := newTestClassifier(oracle).Classify(context.Background(), RequestInput{
			Description: "water pipe burst in the laundry room",
		})
		assert.True(t, result.UsedFallback, "reply %q should engage the fallback", reply)
		assert.True(t, result.HasValidInformation)
	}
}

func TestClassifyNeverFailsUnderPersistentOracleErrors(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("boom")}
	classifier := newTestClassifier(oracle)

	inputs := []RequestInput{
		{Description: "broken window latch in the lobby"},
		{Description: "install a new ceiling light in the study"},
		{Description: "urgent: water flooding the garage"},
	}
	for _, input := range inputs {
		result := classifier.Classify(context.Background(), input)
		assert.True(t, result.HasValidInformation)
		assert.NotEmpty(t, result.Priority)
		assert.NotEmpty(t, result.RequiredSkill)
	}
}

func TestBuildPromptCarriesEnumVocabularies(t *testing.T) {
	prompt := buildPrompt(RequestInput{Description: "leaking tap", Location: "Room 12", TypeHint: "plumbing"})

	for _, category := range domain.IssueCategories() {
		assert.Contains(t, prompt, string(category))
	}
	for _, skill := range domain.TechnicianSkills() {
		assert.Contains(t, prompt, string(skill))
	}
	for _, priority := range domain.Priorities() {
		assert.Contains(t, prompt, string(priority))
	}
	assert.Contains(t, prompt, "leaking tap")
	assert.Contains(t, prompt, "Room 12")
}

func TestExtractJSONObject(t *testing.T) {
	raw, ok := extractJSONObject(`noise {"a": {"b": "}"}} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": "}"}}`, raw)

	_, ok = extractJSONObject("no braces here")
	assert.False(t, ok)

	_, ok = extractJSONObject(`{"unbalanced": {`)
	assert.False(t, ok)
}
