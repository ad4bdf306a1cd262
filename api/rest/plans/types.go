package plans

// one catalog entry
type PlanInfo struct {
	Name                 string `json:"name"`
	MaxAccounts          int    `json:"max_accounts"`
	AdvancedAnalytics    bool   `json:"advanced_analytics"`
	AIInsights           bool   `json:"ai_insights"`
	MultiPlatformCompare bool   `json:"multi_platform_compare"`
}

type PlansResponse struct {
	Plans []PlanInfo `json:"plans"`
}

// the user's current plan with usage against its cap
type CurrentPlanResponse struct {
	Plan              PlanInfo `json:"plan"`
	ConnectedAccounts int      `json:"connected_accounts"`
}

type UpdatePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}
