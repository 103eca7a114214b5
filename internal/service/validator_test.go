package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateManualRejectsShortDescription(t *testing.T) {
	input := RequestInput{Description: "hi", Location: "Room 12", TypeHint: "plumbing"}

	verdict := Validate(input, SourceManual, "")

	assert.False(t, verdict.OK)
	assert.Contains(t, verdict.Reason, "description")
}

func TestValidateManualRejectsMissingLocation(t *testing.T) {
	input := RequestInput{Description: "the kitchen tap is leaking", Location: "", TypeHint: "plumbing"}

	verdict := Validate(input, SourceManual, "")

	assert.False(t, verdict.OK)
	assert.Contains(t, verdict.Reason, "location")
}

func TestValidateManualRejectsMissingType(t *testing.T) {
	input := RequestInput{Description: "the kitchen tap is leaking", Location: "Room 12", TypeHint: ""}

	verdict := Validate(input, SourceManual, "")

	assert.False(t, verdict.OK)
	assert.Contains(t, verdict.Reason, "type")
}

func TestValidateManualRejectsOffTopicText(t *testing.T) {
	// Long enough on every field but nothing actionable in it.
	input := RequestInput{
		Description: "I just wanted to say the weather has been lovely lately",
		Location:    "Room 12",
		TypeHint:    "general",
	}

	verdict := Validate(input, SourceManual, "")

	assert.False(t, verdict.OK)
}

func TestValidateManualAcceptsActionableRequest(t *testing.T) {
	input := RequestInput{
		Description: "bathroom tap is leaking badly",
		Location:    "Room 12",
		TypeHint:    "Plumbing",
	}

	verdict := Validate(input, SourceManual, "")

	assert.True(t, verdict.OK)
	assert.Empty(t, verdict.Reason)
}

func TestValidateVoiceRejectsShortTranscript(t *testing.T) {
	input := RequestInput{Description: "water leak in the kitchen"}

	verdict := Validate(input, SourceVoice, "hi there")

	assert.False(t, verdict.OK)
}

func TestValidateVoiceRejectsNoiseTranscripts(t *testing.T) {
	cases := []string{
		"hello hello hello hello",
		"um uh hmm okay yes",
		"background noise",
		"silence",
		"... !!! ,,, ... ??? ...",
	}
	input := RequestInput{Description: "water leak in the kitchen", TypeHint: "plumbing"}

	for _, transcript := range cases {
		verdict := Validate(input, SourceVoice, transcript)
		assert.False(t, verdict.OK, "transcript %q should be rejected", transcript)
	}
}

func TestValidateVoiceAcceptsRealCall(t *testing.T) {
	input := RequestInput{
		Description: "the wifi stopped working in the whole building",
		Location:    "Building A",
		TypeHint:    "internet",
	}
	transcript := "hi, yes, the wifi stopped working in the whole building this morning"

	verdict := Validate(input, SourceVoice, transcript)

	assert.True(t, verdict.OK)
}

func TestValidateVoiceSkipsManualLengthGates(t *testing.T) {
	// Voice input may have sparse extracted fields as long as the transcript
	// carries substance.
	input := RequestInput{Description: "power outage", Location: "", TypeHint: ""}
	transcript := "there is a power outage on the second floor, the lights are all out"

	verdict := Validate(input, SourceVoice, transcript)

	assert.True(t, verdict.OK)
}
