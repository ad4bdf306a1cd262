package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlens/server/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeValidationError  = "validation_error"
	CodeServerError      = "server_error"
	CodeBadRequest       = "bad_request"
	CodeQuotaExceeded    = "quota_exceeded"
	CodeDuplicateAccount = "duplicate_account"
	CodeDowngradeBlocked = "downgrade_blocked"
	CodeChannelNotFound  = "channel_not_found"
	CodeReconnectNeeded  = "reconnect_required"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permission denied"
	}

	c.JSON(http.StatusForbidden, ErrorResponse{
		Error:   CodeForbidden,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 409 conflict for an account that is already connected
func DuplicateAccount(c *gin.Context) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeDuplicateAccount,
		Message: "account already connected",
	})
}

// returns a 403 error when the plan's connected-account quota is reached
func QuotaExceeded(c *gin.Context, plan string, maxAccounts int) {
	c.JSON(http.StatusForbidden, ErrorResponse{
		Error:   CodeQuotaExceeded,
		Message: fmt.Sprintf("the %s plan allows at most %d connected account(s)", plan, maxAccounts),
	})
}

// returns a 400 error when a plan downgrade would strand connected accounts.
// carries both numbers so the UI can render an actionable message.
func DowngradeBlocked(c *gin.Context, currentAccounts, maxAllowed int) {
	c.JSON(http.StatusBadRequest, DowngradeBlockedResponse{
		Error: CodeDowngradeBlocked,
		Message: fmt.Sprintf(
			"you have %d connected accounts but the target plan allows only %d; remove some accounts before downgrading",
			currentAccounts, maxAllowed,
		),
		CurrentAccounts: currentAccounts,
		MaxAllowed:      maxAllowed,
	})
}

// returns a 404 error when a platform lookup found no matching channel
func ChannelNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeChannelNotFound,
		Message: "channel not found",
	})
}

// returns a 409 error when an account's OAuth grant is no longer usable
func ReconnectRequired(c *gin.Context) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeReconnectNeeded,
		Message: "connection expired, please reconnect this account",
	})
}
