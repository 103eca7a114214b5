package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/observability"
	"github.com/casaflow/community-service/internal/oracle"
)

// ClassificationResult is the triage outcome for a validated input. When
// HasValidInformation is false every other field is void and must not be used
// to create a work item.
type ClassificationResult struct {
	HasValidInformation bool
	InsufficientReason  string
	IsIssue             bool
	IssueCategory       domain.IssueCategory
	ServiceCategory     domain.ServiceCategory
	Priority            domain.Priority
	Title               string
	Description         string
	RequiredSkill       domain.TechnicianSkill
	UsedFallback        bool
}

// Classifier turns a RequestInput into a ClassificationResult. The oracle is
// tried first; any oracle failure is masked by the deterministic keyword
// classifier, so Classify never returns an error.
type Classifier struct {
	oracle  oracle.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClassifier constructs the classifier.
func NewClassifier(client oracle.Client, logger *zap.Logger, metrics *observability.Metrics) *Classifier {
	return &Classifier{oracle: client, logger: logger, metrics: metrics}
}

// Classify runs the oracle attempt and falls back internally on any failure.
func (c *Classifier) Classify(ctx context.Context, input RequestInput) ClassificationResult {
	result, err := c.classifyWithOracle(ctx, input)
	if err == nil {
		c.metrics.RecordClassification(false)
		return result
	}

	c.logger.Warn("oracle classification failed, using keyword fallback", zap.Error(err))
	c.metrics.RecordClassification(true)
	return fallbackClassify(input)
}

// oracleReply mirrors the JSON object the prompt instructs the oracle to emit.
type oracleReply struct {
	HasValidInformation *bool  `json:"has_valid_information"`
	InsufficientReason  string `json:"insufficient_reason"`
	IsIssue             *bool  `json:"is_issue"`
	Category            string `json:"category"`
	Priority            string `json:"priority"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	RequiredSkill       string `json:"required_skill"`
}

type oracleFieldError string

func (e oracleFieldError) Error() string { return string(e) }

func (c *Classifier) classifyWithOracle(ctx context.Context, input RequestInput) (ClassificationResult, error) {
	reply, err := c.oracle.Generate(ctx, buildPrompt(input))
	if err != nil {
		return ClassificationResult{}, err
	}

	raw, ok := extractJSONObject(reply)
	if !ok {
		return ClassificationResult{}, oracleFieldError("no JSON object in oracle reply")
	}

	var parsed oracleReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return ClassificationResult{}, err
	}

	// The oracle may veto on semantic grounds the mechanical gates missed;
	// that verdict propagates unchanged rather than triggering the fallback.
	if parsed.HasValidInformation != nil && !*parsed.HasValidInformation {
		reason := parsed.InsufficientReason
		if reason == "" {
			reason = "request does not contain enough information"
		}
		return ClassificationResult{HasValidInformation: false, InsufficientReason: reason}, nil
	}

	if parsed.IsIssue == nil {
		return ClassificationResult{}, oracleFieldError("oracle reply missing is_issue")
	}
	priority := domain.Priority(strings.ToUpper(strings.TrimSpace(parsed.Priority)))
	if !domain.ValidPriority(priority) {
		return ClassificationResult{}, oracleFieldError("oracle reply missing or invalid priority")
	}
	skill := domain.TechnicianSkill(strings.ToUpper(strings.TrimSpace(parsed.RequiredSkill)))
	if !domain.ValidTechnicianSkill(skill) {
		return ClassificationResult{}, oracleFieldError("oracle reply missing or invalid required_skill")
	}

	result := ClassificationResult{
		HasValidInformation: true,
		IsIssue:             *parsed.IsIssue,
		Priority:            priority,
		RequiredSkill:       skill,
		Title:               strings.TrimSpace(parsed.Title),
		Description:         strings.TrimSpace(parsed.Description),
	}

	category := strings.ToUpper(strings.TrimSpace(parsed.Category))
	if result.IsIssue {
		if !domain.ValidIssueCategory(domain.IssueCategory(category)) {
			return ClassificationResult{}, oracleFieldError("oracle reply missing or invalid issue category")
		}
		result.IssueCategory = domain.IssueCategory(category)
	} else {
		if !domain.ValidServiceCategory(domain.ServiceCategory(category)) {
			return ClassificationResult{}, oracleFieldError("oracle reply missing or invalid service category")
		}
		result.ServiceCategory = domain.ServiceCategory(category)
	}

	if result.Title == "" {
		result.Title = deriveTitle(input)
	}
	if result.Description == "" {
		result.Description = input.Description
	}
	return result, nil
}

// buildPrompt renders the structured classification prompt. The category,
// skill, and priority vocabularies come from the domain enums so the prompt
// cannot drift from the code.
func buildPrompt(input RequestInput) string {
	var b strings.Builder
	b.WriteString("You triage maintenance requests for a residential community.\n")
	b.WriteString("Classify the request below and reply with exactly one JSON object, no prose.\n\n")
	b.WriteString("Request description: " + input.Description + "\n")
	b.WriteString("Location: " + input.Location + "\n")
	b.WriteString("Type hint (not authoritative): " + input.TypeHint + "\n")
	if input.ServiceDetail != "" {
		b.WriteString("Service detail: " + input.ServiceDetail + "\n")
	}
	b.WriteString("\nPriority rubric:\n" + domain.PriorityRubric() + "\n")
	b.WriteString("\nIssue categories (something broken): " + domain.IssueCategoryRubric() + "\n")
	b.WriteString("Service categories (requested work): " + domain.ServiceCategoryRubric() + "\n")
	b.WriteString("Technician skills: " + domain.SkillRubric() + "\n")
	b.WriteString("\nReply shape: {\"has_valid_information\": bool, \"insufficient_reason\": string, ")
	b.WriteString("\"is_issue\": bool, \"category\": string, \"priority\": string, ")
	b.WriteString("\"title\": string, \"description\": string, \"required_skill\": string}\n")
	b.WriteString("Set has_valid_information to false only when the request cannot be acted on.\n")
	return b.String()
}

// extractJSONObject returns the first balanced {...} substring, tolerating
// prose before and after it.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
