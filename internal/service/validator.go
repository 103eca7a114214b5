package service

import (
	"fmt"
	"strings"
	"unicode"
)

// InputSource identifies which channel produced the input. Voice input gets
// the transcript and noise gates; manual input the per-field length gates.
type InputSource string

const (
	SourceVoice  InputSource = "voice"
	SourceManual InputSource = "manual"
)

// ValidationResult is the sufficiency-gate outcome.
type ValidationResult struct {
	OK     bool
	Reason string
}

const (
	minDescriptionLen = 10
	minLocationLen    = 2
	minTypeHintLen    = 3
	minTranscriptLen  = 10
)

// domainVocabulary is the fixed token list one of which must appear in the
// combined description/type/service text. Catches long but off-topic input.
var domainVocabulary = []string{
	"problem", "fix", "repair", "broken", "clean", "service", "maintenance",
	"install", "replace", "leak", "water", "electricity", "electrical", "power",
	"light", "wifi", "internet", "network", "plumbing", "pipe", "tap", "faucet",
	"drain", "toilet", "door", "window", "lock", "ac", "air condition", "heater",
	"heating", "fridge", "refrigerator", "washing", "oven", "stove", "paint",
	"wall", "ceiling", "floor", "pest", "garbage", "elevator", "lift", "gate",
}

// noisePatterns mark accidental voice activations: transcripts that are only
// greetings, filler, or recorder artifacts.
var noisePatterns = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"um", "uh", "hmm", "okay", "ok", "yes", "no", "test", "testing",
	"background noise", "silence", "inaudible", "no speech detected",
}

// Validate applies the sufficiency gates. Voice input is judged on the raw
// transcript plus vocabulary; manual input on per-field lengths plus
// vocabulary. Failure short-circuits the pipeline before any oracle call.
func Validate(input RequestInput, source InputSource, transcript string) ValidationResult {
	switch source {
	case SourceVoice:
		if reason, ok := checkTranscript(transcript); !ok {
			return ValidationResult{OK: false, Reason: reason}
		}
	default:
		if len(input.Description) < minDescriptionLen {
			return ValidationResult{OK: false, Reason: fmt.Sprintf("description too short, need at least %d characters", minDescriptionLen)}
		}
		if len(input.Location) < minLocationLen {
			return ValidationResult{OK: false, Reason: "location missing or too short"}
		}
		if len(input.TypeHint) < minTypeHintLen {
			return ValidationResult{OK: false, Reason: "request type missing or too short"}
		}
	}

	if !containsDomainToken(input.CombinedText()) {
		return ValidationResult{OK: false, Reason: "request does not describe a recognizable problem or service"}
	}

	return ValidationResult{OK: true}
}

func checkTranscript(transcript string) (string, bool) {
	trimmed := strings.TrimSpace(transcript)
	if len(trimmed) < minTranscriptLen {
		return "call transcript too short to act on", false
	}
	if isPunctuationOnly(trimmed) {
		return "call transcript contains no words", false
	}
	if isNoiseOnly(trimmed) {
		return "call appears to be an accidental activation", false
	}
	return "", true
}

func isPunctuationOnly(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isNoiseOnly reports whether every word in the transcript belongs to the
// noise vocabulary, or the whole transcript matches a noise phrase.
func isNoiseOnly(transcript string) bool {
	lower := strings.ToLower(transcript)
	compact := strings.TrimFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, pattern := range noisePatterns {
		if compact == pattern {
			return true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return true
	}
	for _, word := range words {
		if !isNoiseWord(word) {
			return false
		}
	}
	return true
}

func isNoiseWord(word string) bool {
	for _, pattern := range noisePatterns {
		if word == pattern {
			return true
		}
	}
	return false
}

func containsDomainToken(combined string) bool {
	for _, token := range domainVocabulary {
		if strings.Contains(combined, token) {
			return true
		}
	}
	return false
}
