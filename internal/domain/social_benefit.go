package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrBenefitNameEmpty = errors.New("social benefit name must not be empty")
)

type BenefitAmountError struct {
	Amount float64
}

func (e *BenefitAmountError) Error() string {
	return fmt.Sprintf("social benefit amount must be positive, got %v", e.Amount)
}

type DuplicateBenefitError struct {
	Name string
}

func (e *DuplicateBenefitError) Error() string {
	return fmt.Sprintf("duplicate social benefit %q", e.Name)
}

var benefitSpaceRE = regexp.MustCompile(`\s+`)

// SocialBenefit is one benefit a family member receives. Names are
// normalized (trimmed, inner whitespace collapsed) so the collection's
// uniqueness check is not fooled by spacing.
type SocialBenefit struct {
	BenefitName   string         `json:"benefitName"`
	Amount        float64        `json:"amount"`
	BeneficiaryID FamilyMemberID `json:"beneficiaryId"`
}

func NewSocialBenefit(benefitName string, amount float64, beneficiaryID FamilyMemberID) (SocialBenefit, error) {
	normalized := benefitSpaceRE.ReplaceAllString(strings.TrimSpace(benefitName), " ")
	if normalized == "" {
		return SocialBenefit{}, ErrBenefitNameEmpty
	}
	if amount <= 0 {
		return SocialBenefit{}, &BenefitAmountError{Amount: amount}
	}
	return SocialBenefit{BenefitName: normalized, Amount: amount, BeneficiaryID: beneficiaryID}, nil
}

// SocialBenefitsCollection holds benefits with unique names.
type SocialBenefitsCollection struct {
	Items []SocialBenefit `json:"items"`
}

func NewSocialBenefitsCollection(benefits []SocialBenefit) (SocialBenefitsCollection, error) {
	if len(benefits) == 0 {
		return SocialBenefitsCollection{}, nil
	}
	seen := make(map[string]struct{}, len(benefits))
	for _, b := range benefits {
		if _, dup := seen[b.BenefitName]; dup {
			return SocialBenefitsCollection{}, &DuplicateBenefitError{Name: b.BenefitName}
		}
		seen[b.BenefitName] = struct{}{}
	}
	out := make([]SocialBenefit, len(benefits))
	copy(out, benefits)
	return SocialBenefitsCollection{Items: out}, nil
}

func (c SocialBenefitsCollection) IsEmpty() bool { return len(c.Items) == 0 }

func (c SocialBenefitsCollection) Count() int { return len(c.Items) }

func (c SocialBenefitsCollection) TotalAmount() float64 {
	var total float64
	for _, b := range c.Items {
		total += b.Amount
	}
	return total
}
