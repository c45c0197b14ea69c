package service

import (
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

const (
	// UnclassifiedBaseScore is the base contribution when no taxonomy entry resolves.
	UnclassifiedBaseScore = 30
	pointsMultiplier      = 10

	minScore = 0
	maxScore = 100

	financialsAvailableBonus = 5
)

// ScrutinyInputs are the underwriter's qualitative answers for one counterparty.
type ScrutinyInputs struct {
	YearsInBusiness     int
	Ownership           valueobject.OwnershipType
	Estate              valueobject.EstateType
	DebtLevel           valueobject.DebtLevel
	PaymentHistory      valueobject.PaymentHistory
	FinancialsAvailable bool
}

// ScoreBreakdown is each category's unclamped contribution to the score.
type ScoreBreakdown struct {
	BaseScore        int `json:"base_score"`
	LongevityBonus   int `json:"longevity_bonus"`
	OwnershipBonus   int `json:"ownership_bonus"`
	EstateBonus      int `json:"estate_bonus"`
	FinancialOverlay int `json:"financial_overlay"`
	PaymentBonus     int `json:"payment_bonus"`
}

// Total is the unclamped sum of every category.
func (b ScoreBreakdown) Total() int {
	return b.BaseScore + b.LongevityBonus + b.OwnershipBonus + b.EstateBonus + b.FinancialOverlay + b.PaymentBonus
}

// ScrutinyResult is the outcome of one scoring run.
type ScrutinyResult struct {
	Score     int
	Verdict   Verdict
	Breakdown ScoreBreakdown

	// Entry is the taxonomy leaf the classification resolved to. Classified is
	// false when nothing resolved and the neutral base was used.
	Entry      taxonomy.Entry
	Classified bool
}

// Tier is shorthand for r.Verdict.Tier.
func (r ScrutinyResult) Tier() valueobject.VerdictTier { return r.Verdict.Tier }

// ReferenceCreditScore is the matched leaf's 1-10 credit score (lower is
// better), or 0 when unclassified. Display only: it takes no part in Score.
func (r ScrutinyResult) ReferenceCreditScore() int {
	if !r.Classified {
		return 0
	}
	return r.Entry.Score
}

var ownershipBonus = map[valueobject.OwnershipType]int{
	valueobject.OwnershipMNCListed:    15,
	valueobject.OwnershipJVWithMNC:    10,
	valueobject.OwnershipPrivateLocal: 5,
	valueobject.OwnershipStartupSME:   -5,
}

var estateBonus = map[valueobject.EstateType]int{
	valueobject.EstateTier1:          15,
	valueobject.EstateTier2:          10,
	valueobject.EstateIndustrialZone: 5,
	valueobject.EstateStandalone:     0,
}

var debtAdjustment = map[valueobject.DebtLevel]int{
	valueobject.DebtLow:    5,
	valueobject.DebtMedium: 0,
	valueobject.DebtHigh:   -15,
}

var paymentBonus = map[valueobject.PaymentHistory]int{
	valueobject.PaymentExcellent: 10,
	valueobject.PaymentGood:      5,
	valueobject.PaymentFair:      0,
	valueobject.PaymentPoor:      -10,
}

// longevityTiers are checked in order; the first strictly exceeded threshold wins.
var longevityTiers = []struct {
	moreThan int
	bonus    int
}{
	{moreThan: 20, bonus: 10},
	{moreThan: 10, bonus: 7},
	{moreThan: 5, bonus: 5},
}

const (
	startupYears   = 2
	startupPenalty = -5
)

// ScrutinyEngine computes the 0-100 bankability score. It holds no mutable
// state; Score is a pure function of its arguments and the registry.
type ScrutinyEngine struct {
	registry   *taxonomy.Registry
	classifier *VerdictClassifier
}

// NewScrutinyEngine wires the engine to a taxonomy and a verdict classifier.
func NewScrutinyEngine(registry *taxonomy.Registry, classifier *VerdictClassifier) *ScrutinyEngine {
	return &ScrutinyEngine{registry: registry, classifier: classifier}
}

// Score evaluates a classification and inputs. Negative years land in the
// startup bucket.
func (e *ScrutinyEngine) Score(c valueobject.Classification, in ScrutinyInputs) ScrutinyResult {
	entry, classified := e.registry.Find(c)

	base := UnclassifiedBaseScore
	if classified {
		base = entry.Points * pointsMultiplier
	}

	breakdown := ScoreBreakdown{
		BaseScore:        base,
		LongevityBonus:   LongevityBonus(in.YearsInBusiness),
		OwnershipBonus:   ownershipBonus[in.Ownership],
		EstateBonus:      estateBonus[in.Estate],
		FinancialOverlay: FinancialOverlay(in.FinancialsAvailable, in.DebtLevel),
		PaymentBonus:     paymentBonus[in.PaymentHistory],
	}

	score := clamp(breakdown.Total())

	return ScrutinyResult{
		Score:      score,
		Verdict:    e.classifier.Classify(score),
		Breakdown:  breakdown,
		Entry:      entry,
		Classified: classified,
	}
}

// LongevityBonus scores years in business: >20 → +10, >10 → +7, >5 → +5,
// <2 → −5, and 2 through 5 inclusive → 0.
func LongevityBonus(years int) int {
	for _, t := range longevityTiers {
		if years > t.moreThan {
			return t.bonus
		}
	}
	if years < startupYears {
		return startupPenalty
	}
	return 0
}

// OwnershipBonus returns the table weight for o.
func OwnershipBonus(o valueobject.OwnershipType) int { return ownershipBonus[o] }

// EstateBonus returns the table weight for e.
func EstateBonus(e valueobject.EstateType) int { return estateBonus[e] }

// PaymentBonus returns the table weight for p.
func PaymentBonus(p valueobject.PaymentHistory) int { return paymentBonus[p] }

// FinancialOverlay adds +5 for available financials and the debt-level
// adjustment on top; the two are independent.
func FinancialOverlay(financialsAvailable bool, debt valueobject.DebtLevel) int {
	overlay := debtAdjustment[debt]
	if financialsAvailable {
		overlay += financialsAvailableBonus
	}
	return overlay
}

func clamp(score int) int {
	return max(minScore, min(maxScore, score))
}
