package guard

import "domainguard/pkg/domain"

// TrialScanCap is the lifetime number of scans a trial user may run.
const TrialScanCap = 5

// PlanOffer describes one purchasable tier in quota-denial payloads.
type PlanOffer struct {
	Plan     domain.PlanTier `json:"plan"`
	Price    string          `json:"price"`
	Features []string        `json:"features"`
}

// planLimits is the per-tier usage cap catalog. A negative cap means unlimited.
var planLimits = map[domain.PlanTier]domain.PlanLimits{
	domain.PlanTrial:   {MaxCompanies: 1, MaxScans: TrialScanCap},
	domain.PlanStarter: {MaxCompanies: 3, MaxScans: -1},
	domain.PlanPro:     {MaxCompanies: -1, MaxScans: -1},
}

// LimitsFor returns the usage caps of a tier. Unknown tiers get trial caps.
func LimitsFor(plan domain.PlanTier) domain.PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}

	return planLimits[domain.PlanTrial]
}

// UpgradeOffers lists the non-trial tiers a denied user can move to.
func UpgradeOffers() []PlanOffer {
	return []PlanOffer{
		{
			Plan:  domain.PlanStarter,
			Price: "$29/month",
			Features: []string{
				"unlimited scans",
				"up to 3 companies",
				"email notifications",
			},
		},
		{
			Plan:  domain.PlanPro,
			Price: "$99/month",
			Features: []string{
				"unlimited scans",
				"unlimited companies",
				"email notifications",
				"priority probe scheduling",
			},
		},
	}
}
