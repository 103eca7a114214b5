package domain

import "strings"

// IssueCategory is the closed vocabulary for Issue work items.
type IssueCategory string

const (
	IssuePlumbing   IssueCategory = "PLUMBING"
	IssueElectrical IssueCategory = "ELECTRICAL"
	IssueACHeating  IssueCategory = "AC_HEATING"
	IssueAppliance  IssueCategory = "APPLIANCE"
	IssueNetwork    IssueCategory = "NETWORK"
	IssuePainting   IssueCategory = "PAINTING"
	IssueCarpentry  IssueCategory = "CARPENTRY"
	IssueCleaning   IssueCategory = "CLEANING"
	IssueOther      IssueCategory = "OTHER"
)

// IssueCategories lists the closed vocabulary.
func IssueCategories() []IssueCategory {
	return []IssueCategory{
		IssuePlumbing, IssueElectrical, IssueACHeating, IssueAppliance,
		IssueNetwork, IssuePainting, IssueCarpentry, IssueCleaning, IssueOther,
	}
}

// ValidIssueCategory reports whether c is part of the closed vocabulary.
func ValidIssueCategory(c IssueCategory) bool {
	for _, known := range IssueCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ServiceCategory is the closed vocabulary for ServiceRequest work items.
type ServiceCategory string

const (
	ServiceCleaning     ServiceCategory = "CLEANING"
	ServiceMaintenance  ServiceCategory = "MAINTENANCE"
	ServiceInstallation ServiceCategory = "INSTALLATION"
	ServiceUpgrade      ServiceCategory = "UPGRADE"
	ServiceOther        ServiceCategory = "OTHER"
)

// ServiceCategories lists the closed vocabulary.
func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		ServiceCleaning, ServiceMaintenance, ServiceInstallation, ServiceUpgrade, ServiceOther,
	}
}

// ValidServiceCategory reports whether c is part of the closed vocabulary.
func ValidServiceCategory(c ServiceCategory) bool {
	for _, known := range ServiceCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// TechnicianSkill is the closed specialty vocabulary shared by both variants.
type TechnicianSkill string

const (
	SkillPlumbing           TechnicianSkill = "PLUMBING"
	SkillElectrical         TechnicianSkill = "ELECTRICAL"
	SkillACHeating          TechnicianSkill = "AC_HEATING"
	SkillApplianceRepair    TechnicianSkill = "APPLIANCE_REPAIR"
	SkillNetworking         TechnicianSkill = "NETWORKING"
	SkillPainting           TechnicianSkill = "PAINTING"
	SkillCarpentry          TechnicianSkill = "CARPENTRY"
	SkillCleaning           TechnicianSkill = "CLEANING"
	SkillGeneralMaintenance TechnicianSkill = "GENERAL_MAINTENANCE"
)

// TechnicianSkills lists the closed vocabulary.
func TechnicianSkills() []TechnicianSkill {
	return []TechnicianSkill{
		SkillPlumbing, SkillElectrical, SkillACHeating, SkillApplianceRepair,
		SkillNetworking, SkillPainting, SkillCarpentry, SkillCleaning,
		SkillGeneralMaintenance,
	}
}

// ValidTechnicianSkill reports whether s is part of the closed vocabulary.
func ValidTechnicianSkill(s TechnicianSkill) bool {
	for _, known := range TechnicianSkills() {
		if s == known {
			return true
		}
	}
	return false
}

// The rubric helpers below render enum vocabularies into the classifier
// prompt, so the prompt text cannot drift from the enums.

// IssueCategoryRubric renders the Issue vocabulary as a comma-separated list.
func IssueCategoryRubric() string {
	names := make([]string, 0, len(IssueCategories()))
	for _, c := range IssueCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// ServiceCategoryRubric renders the Service vocabulary as a comma-separated list.
func ServiceCategoryRubric() string {
	names := make([]string, 0, len(ServiceCategories()))
	for _, c := range ServiceCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// SkillRubric renders the technician-skill vocabulary as a comma-separated list.
func SkillRubric() string {
	names := make([]string, 0, len(TechnicianSkills()))
	for _, s := range TechnicianSkills() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// PriorityRubric renders the priority levels with their descriptions, one per line.
func PriorityRubric() string {
	var b strings.Builder
	for i, p := range Priorities() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(p))
		b.WriteString(": ")
		b.WriteString(PriorityDescription(p))
	}
	return b.String()
}
