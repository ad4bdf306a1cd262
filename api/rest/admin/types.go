package admin

// outcome of a full refresh pass
type RefreshAllResponse struct {
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}
