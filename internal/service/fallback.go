package service

import (
	"strings"
	"unicode"

	"github.com/casaflow/community-service/internal/domain"
)

// The deterministic fallback classifier. It must be total: any validated
// input yields a usable classification, trading nuance for availability when
// the oracle is down or misbehaving.

var breakageWords = []string{
	"broken", "not working", "doesn't work", "does not work", "stopped working",
	"damaged", "faulty", "leak", "leaking", "burst", "crack", "jammed", "stuck",
	"overflow", "malfunction", "out of order",
}

var serviceWords = []string{
	"cleaning", "deep clean", "maintenance", "installation", "install",
	"upgrade", "inspection", "setup", "schedule",
}

// keywordFamily maps a keyword group to its categories and skill. Families
// are checked in a fixed priority order; the first match wins.
type keywordFamily struct {
	keywords        []string
	issueCategory   domain.IssueCategory
	serviceCategory domain.ServiceCategory
	skill           domain.TechnicianSkill
}

var keywordFamilies = []keywordFamily{
	{
		keywords:        []string{"clean", "housekeeping", "garbage", "trash", "pest"},
		issueCategory:   domain.IssueCleaning,
		serviceCategory: domain.ServiceCleaning,
		skill:           domain.SkillCleaning,
	},
	{
		keywords:        []string{"electric", "power", "light", "socket", "switch", "wiring", "bulb", "fuse"},
		issueCategory:   domain.IssueElectrical,
		serviceCategory: domain.ServiceMaintenance,
		skill:           domain.SkillElectrical,
	},
	{
		keywords:        []string{"plumb", "water", "pipe", "tap", "faucet", "drain", "toilet", "sink", "shower", "leak"},
		issueCategory:   domain.IssuePlumbing,
		serviceCategory: domain.ServiceMaintenance,
		skill:           domain.SkillPlumbing,
	},
	{
		keywords:        []string{"ac", "air condition", "cooling", "heater", "heating", "thermostat", "hvac"},
		issueCategory:   domain.IssueACHeating,
		serviceCategory: domain.ServiceMaintenance,
		skill:           domain.SkillACHeating,
	},
	{
		keywords:        []string{"fridge", "refrigerator", "washing machine", "washer", "dryer", "oven", "stove", "microwave", "dishwasher", "appliance"},
		issueCategory:   domain.IssueAppliance,
		serviceCategory: domain.ServiceMaintenance,
		skill:           domain.SkillApplianceRepair,
	},
	{
		keywords:        []string{"wifi", "wi-fi", "internet", "network", "router", "connection"},
		issueCategory:   domain.IssueNetwork,
		serviceCategory: domain.ServiceInstallation,
		skill:           domain.SkillNetworking,
	},
	{
		keywords:        []string{"paint", "peeling", "stain on wall"},
		issueCategory:   domain.IssuePainting,
		serviceCategory: domain.ServiceUpgrade,
		skill:           domain.SkillPainting,
	},
	{
		keywords:        []string{"door", "window", "cabinet", "furniture", "wood", "lock", "hinge", "carpent", "shelf"},
		issueCategory:   domain.IssueCarpentry,
		serviceCategory: domain.ServiceMaintenance,
		skill:           domain.SkillCarpentry,
	},
}

var priorityP1Words = []string{"urgent", "emergency", "asap", "critical", "immediately", "danger", "fire", "flood", "gas"}
var priorityP2Words = []string{"important", "high priority", "soon", "quickly"}
var priorityP4Words = []string{"whenever", "no rush", "not urgent", "low priority", "eventually", "no hurry"}

// fallbackClassify derives a complete classification from keywords alone.
// Deterministic so the tie-break and family ordering stay testable.
func fallbackClassify(input RequestInput) ClassificationResult {
	combined := input.CombinedText()

	result := ClassificationResult{
		HasValidInformation: true,
		IsIssue:             decideIsIssue(combined),
		Priority:            decidePriority(combined),
		Title:               deriveTitle(input),
		Description:         input.Description,
		UsedFallback:        true,
	}

	family, matched := matchFamily(combined)
	if matched {
		result.IssueCategory = family.issueCategory
		result.ServiceCategory = family.serviceCategory
		result.RequiredSkill = family.skill
	} else {
		result.IssueCategory = domain.IssueOther
		result.ServiceCategory = domain.ServiceOther
		result.RequiredSkill = domain.SkillGeneralMaintenance
	}

	// Only the variant-appropriate category survives.
	if result.IsIssue {
		result.ServiceCategory = ""
	} else {
		result.IssueCategory = ""
	}
	return result
}

func decideIsIssue(combined string) bool {
	breakage := containsAny(combined, breakageWords)
	if breakage {
		return true
	}
	if containsAny(combined, serviceWords) {
		return false
	}
	return containsAny(combined, []string{"fix", "help"})
}

func decidePriority(combined string) domain.Priority {
	switch {
	case containsAny(combined, priorityP1Words):
		return domain.PriorityP1
	case containsAny(combined, priorityP2Words):
		return domain.PriorityP2
	case containsAny(combined, priorityP4Words):
		return domain.PriorityP4
	default:
		return domain.PriorityP3
	}
}

func matchFamily(combined string) (keywordFamily, bool) {
	for _, family := range keywordFamilies {
		if containsAny(combined, family.keywords) {
			return family, true
		}
	}
	return keywordFamily{}, false
}

// containsAny matches multi-word keywords as substrings and short tokens as
// whole words, so "ac" does not fire inside "black".
func containsAny(text string, keywords []string) bool {
	var words []string
	for _, keyword := range keywords {
		if strings.ContainsAny(keyword, " -") || len(keyword) > 4 {
			if strings.Contains(text, keyword) {
				return true
			}
			continue
		}
		if words == nil {
			words = splitWords(text)
		}
		for _, word := range words {
			if word == keyword || strings.HasPrefix(word, keyword+"s") {
				return true
			}
		}
	}
	return false
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func deriveTitle(input RequestInput) string {
	source := input.Description
	if source == "" {
		source = input.TypeHint
	}
	source = strings.TrimSpace(source)
	if len(source) <= 60 {
		return source
	}
	cut := strings.LastIndex(source[:60], " ")
	if cut <= 0 {
		cut = 60
	}
	return source[:cut] + "..."
}
