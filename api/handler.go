// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/poiesic/lexcheck/workflow"
)

// ComplianceHandler serves compliance-check requests over HTTP.
type ComplianceHandler struct {
	pipeline *workflow.Pipeline
	logger   *slog.Logger
}

// NewComplianceHandler creates a handler backed by the given pipeline.
func NewComplianceHandler(pipeline *workflow.Pipeline, logger *slog.Logger) *ComplianceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComplianceHandler{
		pipeline: pipeline,
		logger:   logger.With("component", "api"),
	}
}

// Check handles POST /api/v1/compliance/check.
func (h *ComplianceHandler) Check(c *gin.Context) {
	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID)

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status: "error",
			Error:  "invalid request body: " + err.Error(),
		})
		return
	}

	start := time.Now()
	state, err := h.pipeline.Run(c.Request.Context(), req.Content.Data)
	if err != nil {
		logger.Error("compliance check failed", "error", err)
		// Internal detail stays in the log; clients get a generic message.
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status: "error",
			Error:  "compliance check failed",
		})
		return
	}

	logger.Info("compliance check served",
		"compliant", state.Verdict.Compliant,
		"elapsed", time.Since(start))

	c.JSON(http.StatusOK, CheckResponse{
		Status:         "success",
		Result:         workflow.BuildResult(state),
		ProcessingTime: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

// Health handles GET /health.
func (h *ComplianceHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
