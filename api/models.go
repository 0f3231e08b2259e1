package api

import "github.com/poiesic/lexcheck/workflow"

// ContentData is the ad copy submitted for checking.
type ContentData struct {
	Type string `json:"type"`
	Data string `json:"data" binding:"required"`
}

// RequestOptions narrows or annotates a check. The fields are advisory;
// retrieval always covers all supported laws.
type RequestOptions struct {
	TargetLaws            []string `json:"target_laws,omitempty"`
	Category              string   `json:"category,omitempty"`
	ProductSpecifications string   `json:"product_specifications,omitempty"`
}

// CheckRequest is the body of POST /api/v1/compliance/check.
type CheckRequest struct {
	Content ContentData     `json:"content" binding:"required"`
	Options *RequestOptions `json:"options,omitempty"`
}

// CheckResponse is the body returned for a completed check.
// ProcessingTime is in milliseconds.
type CheckResponse struct {
	Status         string          `json:"status"`
	Result         workflow.Result `json:"result"`
	ProcessingTime float64         `json:"processing_time"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
