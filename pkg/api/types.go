package api

import (
	"time"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
