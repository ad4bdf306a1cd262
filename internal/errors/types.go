package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "quota_exceeded", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// DowngradeBlockedResponse carries both numbers so the UI can explain
// exactly why the plan change was rejected
type DowngradeBlockedResponse struct {
	Error           string `json:"error"`
	Message         string `json:"message"`
	CurrentAccounts int    `json:"current_accounts"`
	MaxAllowed      int    `json:"max_allowed"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
