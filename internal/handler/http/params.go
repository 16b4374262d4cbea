package http

import "net/http"

// DeletedResponse reports how many rows a reset removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
