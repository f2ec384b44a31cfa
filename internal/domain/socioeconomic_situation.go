package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInconsistentBenefitFlag = errors.New("benefit flag is false but the benefits collection is not empty")
	ErrMissingSocialBenefits   = errors.New("benefit flag is true but the benefits collection is empty")
	ErrIncomeSourceEmpty       = errors.New("main source of income must not be empty")
)

type NegativeIncomeError struct {
	Field  string
	Amount float64
}

func (e *NegativeIncomeError) Error() string {
	return fmt.Sprintf("%s must not be negative, got %v", e.Field, e.Amount)
}

type IncomePerCapitaError struct {
	PerCapita float64
	Total     float64
}

func (e *IncomePerCapitaError) Error() string {
	return fmt.Sprintf("income per capita %v exceeds total family income %v", e.PerCapita, e.Total)
}

// SocioEconomicSituation consolidates family income and benefits.
type SocioEconomicSituation struct {
	TotalFamilyIncome     float64                  `json:"totalFamilyIncome"`
	IncomePerCapita       float64                  `json:"incomePerCapita"`
	ReceivesSocialBenefit bool                     `json:"receivesSocialBenefit"`
	SocialBenefits        SocialBenefitsCollection `json:"socialBenefits"`
	MainSourceOfIncome    string                   `json:"mainSourceOfIncome"`
	HasUnemployed         bool                     `json:"hasUnemployed"`
}

func NewSocioEconomicSituation(totalFamilyIncome, incomePerCapita float64, receivesSocialBenefit bool, socialBenefits SocialBenefitsCollection, mainSourceOfIncome string, hasUnemployed bool) (SocioEconomicSituation, error) {
	if !receivesSocialBenefit && !socialBenefits.IsEmpty() {
		return SocioEconomicSituation{}, ErrInconsistentBenefitFlag
	}
	if receivesSocialBenefit && socialBenefits.IsEmpty() {
		return SocioEconomicSituation{}, ErrMissingSocialBenefits
	}
	if totalFamilyIncome < 0 {
		return SocioEconomicSituation{}, &NegativeIncomeError{Field: "total family income", Amount: totalFamilyIncome}
	}
	if incomePerCapita < 0 {
		return SocioEconomicSituation{}, &NegativeIncomeError{Field: "income per capita", Amount: incomePerCapita}
	}
	if incomePerCapita > totalFamilyIncome {
		return SocioEconomicSituation{}, &IncomePerCapitaError{PerCapita: incomePerCapita, Total: totalFamilyIncome}
	}
	trimmedSource := strings.TrimSpace(mainSourceOfIncome)
	if trimmedSource == "" {
		return SocioEconomicSituation{}, ErrIncomeSourceEmpty
	}
	return SocioEconomicSituation{
		TotalFamilyIncome:     totalFamilyIncome,
		IncomePerCapita:       incomePerCapita,
		ReceivesSocialBenefit: receivesSocialBenefit,
		SocialBenefits:        socialBenefits,
		MainSourceOfIncome:    trimmedSource,
		HasUnemployed:         hasUnemployed,
	}, nil
}
