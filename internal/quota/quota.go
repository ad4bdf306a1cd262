// Package quota maps subscription plan tiers to connected-account limits
// and feature flags. Everything here is pure - persistence and enforcement
// points live with the callers.
package quota

// Plan is a subscription tier
type Plan string

const (
	PlanFree   Plan = "free"
	PlanPro    Plan = "pro"
	PlanAgency Plan = "agency"
)

// Unlimited marks a plan without an account cap
const Unlimited = -1

// tier ordering for downgrade detection
var planOrder = map[Plan]int{
	PlanFree:   0,
	PlanPro:    1,
	PlanAgency: 2,
}

// per-plan capabilities
type Config struct {
	MaxAccounts          int
	AdvancedAnalytics    bool
	AIInsights           bool
	MultiPlatformCompare bool
}

var planConfig = map[Plan]Config{
	PlanFree: {
		MaxAccounts: 1,
	},
	PlanPro: {
		MaxAccounts:       5,
		AdvancedAnalytics: true,
	},
	PlanAgency: {
		MaxAccounts:          Unlimited,
		AdvancedAnalytics:    true,
		AIInsights:           true,
		MultiPlatformCompare: true,
	},
}

// AllPlans lists the tiers in ascending order, for catalog endpoints
func AllPlans() []Plan {
	return []Plan{PlanFree, PlanPro, PlanAgency}
}

// result of a downgrade validation, carrying both numbers so the caller
// can present the conflict rather than a bare boolean
type DowngradeResult struct {
	Allowed         bool `json:"allowed"`
	CurrentAccounts int  `json:"current_accounts"`
	MaxAllowed      int  `json:"max_allowed"`
}

// normalizes a stored plan value; unknown or missing values are treated as free
func ParsePlan(value string) Plan {
	plan := Plan(value)

	if _, ok := planConfig[plan]; !ok {
		return PlanFree
	}

	return plan
}

// returns the capabilities for a plan
func ConfigFor(plan Plan) Config {
	cfg, ok := planConfig[plan]

	if !ok {
		return planConfig[PlanFree]
	}

	return cfg
}

// returns the maximum connected-account count for a plan.
// Unlimited (-1) means no cap.
func MaxAccounts(plan Plan) int {
	return ConfigFor(plan).MaxAccounts
}

// reports whether another account may be connected under the plan
func CanAddAccount(plan Plan, currentCount int) bool {
	max := MaxAccounts(plan)

	if max == Unlimited {
		return true
	}

	return currentCount < max
}

// reports whether moving from current to target is a downgrade
// in the fixed free < pro < agency order
func IsDowngrade(current, target Plan) bool {
	return planOrder[ParsePlan(string(target))] < planOrder[ParsePlan(string(current))]
}

// checks whether the user's connected accounts fit within the target plan
func ValidateDowngrade(currentCount int, target Plan) DowngradeResult {
	max := MaxAccounts(target)

	allowed := max == Unlimited || currentCount <= max

	return DowngradeResult{
		Allowed:         allowed,
		CurrentAccounts: currentCount,
		MaxAllowed:      max,
	}
}
