package platform

import (
	"net/http"
	"time"
)

// shared HTTP client for platform API calls
// reuses connection pool and timeout configuration
var platformHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}
