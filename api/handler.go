package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barodeal/core/fee"
)

// handleCalculate handles POST /v1/calculate
func (s *Server) handleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusBadRequest, &ErrorBody{Code: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	// Execute engine (NO FEE LOGIC HERE)
	outcome := s.engine.Evaluate(req.toFeeRequest())

	switch outcome.State {
	case fee.StatePending:
		c.JSON(http.StatusOK, CalculateResponse{State: fee.StatePending})
	case fee.StateFailed:
		s.logger.Debug("calculation failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(outcome.Err))
		writeError(c, http.StatusUnprocessableEntity, errorBody(outcome.Err))
	default:
		c.JSON(http.StatusOK, CalculateResponse{
			State:      fee.StateComputed,
			Result:     outcome.Result,
			Comparison: outcome.Comparison,
			Display:    newDisplay(outcome.Result, outcome.Comparison),
		})
	}
}

// handleSchedules handles GET /v1/schedules
func (s *Server) handleSchedules(c *gin.Context) {
	table := s.engine.Table()
	c.JSON(http.StatusOK, SchedulesResponse{
		Regions:     table.Regions(),
		Fingerprint: table.Fingerprint().Hex(),
		Schedules:   table.Schedules(),
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     s.version,
		"engine":      "barodeal",
		"api_version": "v1",
		"schedule":    s.engine.Table().Fingerprint().Short(),
	})
}

func writeError(c *gin.Context, status int, body *ErrorBody) {
	c.JSON(status, CalculateResponse{State: fee.StateFailed, Error: body})
}
