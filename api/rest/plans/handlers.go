package plans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/growthlens/profiles"
	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/errors"
	"github.com/growthlens/server/internal/quota"
)

// ListPlansHandler godoc
// @Summary List plans
// @Description Plan catalog with limits and feature flags (no auth required)
// @Tags plans
// @Produce json
// @Success 200 {object} PlansResponse
// @Router /api/v1/plans [get]
func ListPlansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := make([]PlanInfo, 0, len(quota.AllPlans()))
		for _, plan := range quota.AllPlans() {
			catalog = append(catalog, planInfo(plan))
		}

		c.JSON(http.StatusOK, PlansResponse{Plans: catalog})
	}
}

// GetCurrentPlanHandler godoc
// @Summary Get current plan
// @Description The authenticated user's plan and connected-account usage
// @Tags plans
// @Produce json
// @Success 200 {object} CurrentPlanResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/plans/me [get]
// @Security BearerAuth
func GetCurrentPlanHandler(profileRepo *profiles.Repository, accountRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		planValue, err := profileRepo.GetPlan(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load plan", err)
			return
		}

		count, err := accountRepo.CountByUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to count accounts", err)
			return
		}

		c.JSON(http.StatusOK, CurrentPlanResponse{
			Plan:              planInfo(quota.ParsePlan(planValue)),
			ConnectedAccounts: count,
		})
	}
}

// UpdatePlanHandler godoc
// @Summary Change plan
// @Description Switches the user's plan. A downgrade is rejected while more accounts are connected than the target plan allows.
// @Tags plans
// @Accept json
// @Produce json
// @Param request body UpdatePlanRequest true "Target plan"
// @Success 200 {object} CurrentPlanResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 400 {object} errors.DowngradeBlockedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/plans/me [put]
// @Security BearerAuth
func UpdatePlanHandler(profileRepo *profiles.Repository, accountRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req UpdatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "plan is required", err)
			return
		}

		target := quota.ParsePlan(req.Plan)
		if string(target) != req.Plan {
			errors.BadRequest(c, "unknown plan", nil)
			return
		}

		currentValue, err := profileRepo.GetPlan(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load plan", err)
			return
		}

		current := quota.ParsePlan(currentValue)

		count, err := accountRepo.CountByUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to count accounts", err)
			return
		}

		// the plan persists only when the connected accounts fit within it
		if quota.IsDowngrade(current, target) {
			result := quota.ValidateDowngrade(count, target)
			if !result.Allowed {
				errors.DowngradeBlocked(c, result.CurrentAccounts, result.MaxAllowed)
				return
			}
		}

		if _, err := profileRepo.UpdatePlan(c.Request.Context(), userID, string(target)); err != nil {
			errors.InternalError(c, "failed to update plan", err)
			return
		}

		c.JSON(http.StatusOK, CurrentPlanResponse{
			Plan:              planInfo(target),
			ConnectedAccounts: count,
		})
	}
}

func planInfo(plan quota.Plan) PlanInfo {
	cfg := quota.ConfigFor(plan)

	return PlanInfo{
		Name:                 string(plan),
		MaxAccounts:          cfg.MaxAccounts,
		AdvancedAnalytics:    cfg.AdvancedAnalytics,
		AIInsights:           cfg.AIInsights,
		MultiPlatformCompare: cfg.MultiPlatformCompare,
	}
}
