package model

import "time"

// StatusResponse is the liveness probe payload.
type StatusResponse struct {
	Status     string    `json:"status"`
	StoreReady bool      `json:"store_ready"`
	Time       time.Time `json:"time"`
}
