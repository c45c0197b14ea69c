package dto

import "time"

// ---------------------------------------------------------------------------
// Shared shapes
// ---------------------------------------------------------------------------

// Classification is a sector → industry → sub-industry position. Empty fields
// mean "not chosen".
type Classification struct {
	Sector      string `json:"sector,omitempty" yaml:"sector"`
	Industry    string `json:"industry,omitempty" yaml:"industry"`
	SubIndustry string `json:"sub_industry,omitempty" yaml:"sub_industry"`
}

// ScrutinyInputs carries the qualitative answers using their wire labels
// ("MNC/Listed", "Tier-1 Estate", "Low", "Excellent"). Every label is required.
type ScrutinyInputs struct {
	YearsInBusiness     int    `json:"years_in_business" yaml:"years_in_business"`
	Ownership           string `json:"ownership,omitempty" yaml:"ownership"`
	Estate              string `json:"estate,omitempty" yaml:"estate"`
	DebtLevel           string `json:"debt_level,omitempty" yaml:"debt_level"`
	PaymentHistory      string `json:"payment_history,omitempty" yaml:"payment_history"`
	FinancialsAvailable bool   `json:"financials_available" yaml:"financials_available"`
}

// Money is a decimal amount with an ISO 4217 currency (THB when empty).
type Money struct {
	Amount   string `json:"amount" yaml:"amount"`
	Currency string `json:"currency,omitempty" yaml:"currency"`
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ScoreRequest scores a classification and inputs without touching any record.
type ScoreRequest struct {
	Classification Classification `json:"classification" yaml:"classification"`
	Inputs         ScrutinyInputs `json:"inputs" yaml:"inputs"`
	MonthlyBilling *Money         `json:"monthly_billing,omitempty" yaml:"monthly_billing"`
}

// EvaluateScrutinyRequest scores a CRM record. When Classification is empty
// the record's stored classification is used.
type EvaluateScrutinyRequest struct {
	RecordType     string         `json:"record_type"`
	RecordID       string         `json:"record_id"`
	Classification Classification `json:"classification"`
	Inputs         ScrutinyInputs `json:"inputs"`
	MonthlyBilling *Money         `json:"monthly_billing,omitempty"`
	DryRun         bool           `json:"dry_run"`
	AssessedBy     string         `json:"-"`
}

// ClassifyRecordRequest applies one cascading selection to a record.
// Level is "sector", "industry" or "sub_industry".
type ClassifyRecordRequest struct {
	RecordType string `json:"record_type"`
	RecordID   string `json:"record_id"`
	Level      string `json:"level"`
	Value      string `json:"value"`
	ChangedBy  string `json:"-"`
}

// GetAssessmentRequest identifies an assessment to retrieve.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// ListAssessmentsRequest selects a record's assessment history.
type ListAssessmentsRequest struct {
	RecordType string `json:"record_type"`
	RecordID   string `json:"record_id"`
	Limit      int    `json:"limit,omitempty"`
}

// ListIndustriesRequest names the sector whose industries to list.
type ListIndustriesRequest struct {
	Sector string `json:"sector"`
}

// ListSubIndustriesRequest names the industry whose leaves to list.
type ListSubIndustriesRequest struct {
	Industry string `json:"industry"`
}

// RecordClassified is the CRM feed message announcing a record's new classification.
type RecordClassified struct {
	RecordType  string `json:"record_type"`
	RecordID    string `json:"record_id"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	SubIndustry string `json:"sub_industry"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// TaxonomyEntry is one classification leaf.
type TaxonomyEntry struct {
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	SubIndustry string `json:"sub_industry"`
	Score       int    `json:"score"`
	Points      int    `json:"points"`
}

// SubIndustry is a leaf as listed under its industry.
type SubIndustry struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Points int    `json:"points"`
}

// SectorsResponse lists every sector.
type SectorsResponse struct {
	Sectors []string `json:"sectors"`
}

// IndustriesResponse lists a sector's industries.
type IndustriesResponse struct {
	Sector     string   `json:"sector"`
	Industries []string `json:"industries"`
}

// SubIndustriesResponse lists an industry's leaves.
type SubIndustriesResponse struct {
	Industry      string        `json:"industry"`
	SubIndustries []SubIndustry `json:"sub_industries"`
}

// ClassificationResponse is a record's classification after a change.
type ClassificationResponse struct {
	RecordType     string         `json:"record_type"`
	RecordID       string         `json:"record_id"`
	Classification Classification `json:"classification"`
	Complete       bool           `json:"complete"`
}

// ScoreBreakdown is each category's unclamped contribution.
type ScoreBreakdown struct {
	BaseScore        int `json:"base_score"`
	LongevityBonus   int `json:"longevity_bonus"`
	OwnershipBonus   int `json:"ownership_bonus"`
	EstateBonus      int `json:"estate_bonus"`
	FinancialOverlay int `json:"financial_overlay"`
	PaymentBonus     int `json:"payment_bonus"`
	Total            int `json:"total"`
}

// CommercialTerms are the structured conditions of a verdict.
type CommercialTerms struct {
	DepositMonths      int  `json:"deposit_months"`
	ParentGuarantee    bool `json:"parent_guarantee"`
	BankGuarantee      bool `json:"bank_guarantee"`
	AdvancePayment     bool `json:"advance_payment"`
	EnhancedMonitoring bool `json:"enhanced_monitoring"`
	RecommendDecline   bool `json:"recommend_decline"`
}

// ScrutinyResult is the scored outcome for a classification and inputs.
type ScrutinyResult struct {
	Score                int             `json:"score"`
	Tier                 string          `json:"tier"`
	Guidance             string          `json:"guidance"`
	Terms                CommercialTerms `json:"terms"`
	Breakdown            ScoreBreakdown  `json:"breakdown"`
	Classified           bool            `json:"classified"`
	MatchedEntry         *TaxonomyEntry  `json:"matched_entry,omitempty"`
	ReferenceCreditScore int             `json:"reference_credit_score,omitempty"`
	MonthlyBilling       *Money          `json:"monthly_billing,omitempty"`
	Deposit              *Money          `json:"deposit,omitempty"`
}

// AssessmentResponse is a stored (or previewed, when DryRun) assessment.
type AssessmentResponse struct {
	ID             string         `json:"id,omitempty"`
	RecordType     string         `json:"record_type"`
	RecordID       string         `json:"record_id"`
	Classification Classification `json:"classification"`
	Inputs         ScrutinyInputs `json:"inputs"`
	Result         ScrutinyResult `json:"result"`
	AssessedBy     string         `json:"assessed_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	DryRun         bool           `json:"dry_run,omitempty"`
}

// AssessmentListResponse is a record's assessment history, newest first.
type AssessmentListResponse struct {
	RecordType  string               `json:"record_type"`
	RecordID    string               `json:"record_id"`
	Assessments []AssessmentResponse `json:"assessments"`
}
