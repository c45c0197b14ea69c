package testutil

import (
	"time"

	"github.com/psspowers/underwriting/internal/domain/valueobject"
)

// Deterministic record references and timestamps.
const (
	TestAccountID     = "acc-00000000-0001"
	TestOpportunityID = "opp-00000000-0001"
	TestUserID        = "user-00000000-0001"
)

// TestTime is a fixed, UTC, microsecond-truncated instant so values survive a
// Postgres TIMESTAMPTZ round trip unchanged.
var TestTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// Classifications used across tests.
var (
	HyperscaleClassification = valueobject.Classification{
		Sector:      "Technology & Telecom",
		Industry:    "Data centers & cloud",
		SubIndustry: "Hyperscale",
	}
	SugarMillClassification = valueobject.Classification{
		Sector:      "Agriculture & Agribusiness",
		Industry:    "Agri processing",
		SubIndustry: "Sugar mills",
	}
)
