package service

import "strings"

// ExtractedVariables is the structured portion of a telephony call report.
type ExtractedVariables struct {
	IssueDescription string `json:"issue_description"`
	IssueLocation    string `json:"issue_location"`
	IssueType        string `json:"issue_type"`
	ServiceDetails   string `json:"service_details"`
}

// CallReport is the payload delivered by the voice webhook.
type CallReport struct {
	Summary            string             `json:"summary"`
	ExtractedVariables ExtractedVariables `json:"extracted_variables"`
	FullConversation   string             `json:"full_conversation"`
}

// ManualForm is the payload submitted by the authenticated form.
type ManualForm struct {
	IssueDescription string `json:"issue_description"`
	IssueLocation    string `json:"issue_location"`
	IssueType        string `json:"issue_type"`
	ServiceDetails   string `json:"service_details"`
}

// RequestInput is the canonical normalized input for the pipeline. Every
// field is populated (empty string, never absent) so downstream string
// operations need no nil checks.
type RequestInput struct {
	Description   string
	Location      string
	TypeHint      string
	ServiceDetail string
}

// NormalizeCallReport adapts a call-report payload into a RequestInput.
// Pure shape adaptation; no validation.
func NormalizeCallReport(report CallReport) RequestInput {
	description := strings.TrimSpace(report.ExtractedVariables.IssueDescription)
	if description == "" {
		description = strings.TrimSpace(report.Summary)
	}
	return RequestInput{
		Description:   description,
		Location:      strings.TrimSpace(report.ExtractedVariables.IssueLocation),
		TypeHint:      strings.TrimSpace(report.ExtractedVariables.IssueType),
		ServiceDetail: strings.TrimSpace(report.ExtractedVariables.ServiceDetails),
	}
}

// NormalizeManualForm adapts a manual form payload into a RequestInput.
func NormalizeManualForm(form ManualForm) RequestInput {
	return RequestInput{
		Description:   strings.TrimSpace(form.IssueDescription),
		Location:      strings.TrimSpace(form.IssueLocation),
		TypeHint:      strings.TrimSpace(form.IssueType),
		ServiceDetail: strings.TrimSpace(form.ServiceDetails),
	}
}

// CombinedText concatenates the semantic fields for keyword scans.
func (in RequestInput) CombinedText() string {
	return strings.ToLower(strings.Join([]string{in.Description, in.TypeHint, in.ServiceDetail}, " "))
}
