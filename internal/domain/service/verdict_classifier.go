package service

import (
	"github.com/psspowers/underwriting/internal/domain/valueobject"
	"github.com/psspowers/underwriting/pkg/money"
)

// Lower bounds (inclusive) of each verdict band. Fixed in code for now; these
// are the natural candidates if the bands ever become configurable.
const (
	PrimeThreshold       = 85
	BankableThreshold    = 65
	SpeculativeThreshold = 45
)

// CommercialTerms are the structured conditions behind a verdict's guidance text.
type CommercialTerms struct {
	DepositMonths      int  `json:"deposit_months"`
	ParentGuarantee    bool `json:"parent_guarantee"`
	BankGuarantee      bool `json:"bank_guarantee"`
	AdvancePayment     bool `json:"advance_payment"`
	EnhancedMonitoring bool `json:"enhanced_monitoring"`
	RecommendDecline   bool `json:"recommend_decline"`
}

// Verdict is a tier together with its fixed commercial guidance.
type Verdict struct {
	Tier     valueobject.VerdictTier
	Guidance string
	Terms    CommercialTerms
}

type verdictBand struct {
	guidance string
	terms    CommercialTerms
}

var verdictBands = map[valueobject.VerdictTier]verdictBand{
	valueobject.VerdictPrime: {
		guidance: "Standard terms, no deposit required.",
	},
	valueobject.VerdictBankable: {
		guidance: "Require 3-month security deposit.",
		terms:    CommercialTerms{DepositMonths: 3},
	},
	valueobject.VerdictSpeculative: {
		guidance: "Require 6-month deposit + parent-company guarantee.",
		terms:    CommercialTerms{DepositMonths: 6, ParentGuarantee: true},
	},
	valueobject.VerdictHighRisk: {
		guidance: "Decline, or require 12-month bank guarantee with advance payment and enhanced monitoring.",
		terms: CommercialTerms{
			DepositMonths:      12,
			BankGuarantee:      true,
			AdvancePayment:     true,
			EnhancedMonitoring: true,
			RecommendDecline:   true,
		},
	},
}

// VerdictClassifier maps bankability scores to verdict tiers.
type VerdictClassifier struct{}

// NewVerdictClassifier returns a classifier using the fixed thresholds.
func NewVerdictClassifier() *VerdictClassifier {
	return &VerdictClassifier{}
}

// TierForScore returns the band containing score.
//
//	score >= 85 -> PRIME
//	score >= 65 -> BANKABLE
//	score >= 45 -> SPECULATIVE
//	otherwise   -> HIGH_RISK
func TierForScore(score int) valueobject.VerdictTier {
	switch {
	case score >= PrimeThreshold:
		return valueobject.VerdictPrime
	case score >= BankableThreshold:
		return valueobject.VerdictBankable
	case score >= SpeculativeThreshold:
		return valueobject.VerdictSpeculative
	default:
		return valueobject.VerdictHighRisk
	}
}

// Classify returns the verdict for score.
func (c *VerdictClassifier) Classify(score int) Verdict {
	tier := TierForScore(score)
	band := verdictBands[tier]
	return Verdict{Tier: tier, Guidance: band.guidance, Terms: band.terms}
}

// ForTier returns the verdict for a tier read back from storage.
func (c *VerdictClassifier) ForTier(tier valueobject.VerdictTier) (Verdict, bool) {
	band, ok := verdictBands[tier]
	if !ok {
		return Verdict{}, false
	}
	return Verdict{Tier: tier, Guidance: band.guidance, Terms: band.terms}, true
}

// DepositFor sizes the security deposit implied by a verdict for a customer
// billed monthlyBilling per month.
func (c *VerdictClassifier) DepositFor(v Verdict, monthlyBilling money.Money) money.Money {
	return monthlyBilling.Times(v.Terms.DepositMonths)
}
