package accounts

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/growthlens/accounts"
	"github.com/growthlens/server/internal/auth"
	"github.com/growthlens/server/internal/dashboard"
	"github.com/growthlens/server/internal/errors"
	"github.com/growthlens/server/internal/platform"
	"github.com/growthlens/server/internal/syncer"
)

// ListAccountsHandler godoc
// @Summary List connected accounts
// @Description List the authenticated user's connected social accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} AccountsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/accounts [get]
// @Security BearerAuth
func ListAccountsHandler(accountRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		list, err := accountRepo.ListByUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list accounts", err)
			return
		}

		c.JSON(http.StatusOK, AccountsResponse{Accounts: list})
	}
}

// ConnectYouTubeHandler godoc
// @Summary Connect a YouTube channel
// @Description Resolve the given channel URL or handle, fetch its stats and connect it
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body ConnectYouTubeRequest true "Channel URL, handle or id"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/accounts/youtube [post]
// @Security BearerAuth
func ConnectYouTubeHandler(svc *syncer.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req ConnectYouTubeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "url is required", err)
			return
		}

		account, err := svc.ConnectYouTube(c.Request.Context(), userID, req.URL)
		if err != nil {
			respondConnectError(c, err)
			return
		}

		c.JSON(http.StatusCreated, AccountResponse{Account: account})
	}
}

// TikTokConnectURLHandler godoc
// @Summary Start TikTok account connection
// @Description Returns the TikTok authorization URL the client should send the user to
// @Tags accounts
// @Produce json
// @Success 200 {object} TikTokConnectResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/accounts/tiktok/connect [get]
// @Security BearerAuth
func TikTokConnectURLHandler(tiktok *platform.TikTokClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		// the state parameter doubles as the CSRF token and carries the
		// connecting user through the redirect, where no bearer header exists
		state, err := auth.GenerateJWT(userID, "")
		if err != nil {
			errors.InternalError(c, "failed to create state token", err)
			return
		}

		c.JSON(http.StatusOK, TikTokConnectResponse{AuthURL: tiktok.AuthorizeURL(state)})
	}
}

// TikTokCallbackHandler godoc
// @Summary TikTok OAuth callback
// @Description Completes the TikTok connection: exchanges the code and connects the account
// @Tags accounts
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State token from the connect step"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/accounts/tiktok/callback [get]
func TikTokCallbackHandler(svc *syncer.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if code == "" || state == "" {
			errors.BadRequest(c, "code and state are required", nil)
			return
		}

		claims, err := auth.ValidateJWT(state)
		if err != nil {
			errors.Unauthorized(c, "invalid state token")
			return
		}

		account, err := svc.ConnectTikTok(c.Request.Context(), claims.UserID, code)
		if err != nil {
			respondConnectError(c, err)
			return
		}

		c.JSON(http.StatusCreated, AccountResponse{Account: account})
	}
}

// GetAccountHandler godoc
// @Summary Get one connected account
// @Description Returns one account with its snapshot history, refreshed if stale
// @Tags accounts
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} dashboard.AccountDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/accounts/{id} [get]
// @Security BearerAuth
func GetAccountHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		detail, err := agg.GetAccountDetail(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			if stderrors.Is(err, accounts.ErrNotFound) {
				errors.NotFound(c, "account")
				return
			}

			errors.InternalError(c, "failed to load account", err)
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

// DeleteAccountHandler godoc
// @Summary Disconnect an account
// @Description Removes a connected account. Snapshot history is retained.
// @Tags accounts
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/accounts/{id} [delete]
// @Security BearerAuth
func DeleteAccountHandler(svc *syncer.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		if err := svc.RemoveAccount(c.Request.Context(), userID, c.Param("id")); err != nil {
			if stderrors.Is(err, accounts.ErrNotFound) {
				errors.NotFound(c, "account")
				return
			}

			errors.InternalError(c, "failed to disconnect account", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "account disconnected"})
	}
}

// maps connect failures onto the response taxonomy
func respondConnectError(c *gin.Context, err error) {
	var quotaErr *syncer.QuotaExceededError

	switch {
	case stderrors.As(err, &quotaErr):
		errors.QuotaExceeded(c, string(quotaErr.Plan), quotaErr.MaxAccounts)
	case stderrors.Is(err, syncer.ErrDuplicateAccount):
		errors.DuplicateAccount(c)
	case stderrors.Is(err, platform.ErrChannelNotFound):
		errors.ChannelNotFound(c)
	case stderrors.Is(err, platform.ErrAccountNotFound):
		errors.ChannelNotFound(c)
	case platform.IsInvalidGrant(err):
		// stale or reused authorization code
		errors.ReconnectRequired(c)
	default:
		errors.InternalError(c, "failed to connect account", err)
	}
}
