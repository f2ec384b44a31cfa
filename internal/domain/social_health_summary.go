package domain

import (
	"errors"
	"strings"
)

var ErrFunctionalDependencyEmpty = errors.New("functional dependencies must not contain empty entries")

// SocialHealthSummary consolidates care needs and functional
// dependencies. The dependency list is trimmed and de-duplicated while
// preserving the caller's order.
type SocialHealthSummary struct {
	RequiresConstantCare   bool     `json:"requiresConstantCare"`
	HasMobilityImpairment  bool     `json:"hasMobilityImpairment"`
	FunctionalDependencies []string `json:"functionalDependencies"`
	HasRelevantDrugTherapy bool     `json:"hasRelevantDrugTherapy"`
}

func NewSocialHealthSummary(requiresConstantCare, hasMobilityImpairment bool, functionalDependencies []string, hasRelevantDrugTherapy bool) (SocialHealthSummary, error) {
	unique := make([]string, 0, len(functionalDependencies))
	seen := make(map[string]struct{}, len(functionalDependencies))
	for _, dep := range functionalDependencies {
		trimmed := strings.TrimSpace(dep)
		if trimmed == "" {
			return SocialHealthSummary{}, ErrFunctionalDependencyEmpty
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		unique = append(unique, trimmed)
	}
	return SocialHealthSummary{
		RequiresConstantCare:   requiresConstantCare,
		HasMobilityImpairment:  hasMobilityImpairment,
		FunctionalDependencies: unique,
		HasRelevantDrugTherapy: hasRelevantDrugTherapy,
	}, nil
}
