package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/farxc/folha-assistente/internal/intent"
)

const (
	intentTimeout = intent.DefaultTimeout
	sessionTTL    = 24 * time.Hour
	retryAfter    = "5"
)

// parseLimit reads ?limit=, falling back to def for missing or invalid values.
func parseLimit(r *http.Request, def int) int {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		return def
	}
	l, err := strconv.Atoi(limitParam)
	if err != nil || l <= 0 {
		return def
	}
	return l
}
