package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// handleAnalysis runs one analytics computation over a decoded request
// body, with a Redis read-through cache keyed by the raw body. field
// names both the cache-key namespace and the success-envelope payload.
func handleAnalysis(c *gin.Context, field string, compute func(req *AnalysisRequest) (any, error)) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var req AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	key := cacheKey(field, body)
	if cached, ok := cachedResponse(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	result, err := compute(&req)
	if err != nil {
		var uerr userInputError
		if errors.As(err, &uerr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": uerr.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	data, err := json.Marshal(gin.H{"success": true, field: result})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheResponse(c.Request.Context(), key, data, cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// calculateStatistics handles descriptive statistics over raw amounts
func calculateStatistics(c *gin.Context) {
	handleAnalysis(c, "statistics", func(req *AnalysisRequest) (any, error) {
		return computeStatistics(req.Transactions)
	})
}

// calculateTrends handles moving-average trend analysis of daily net values
func calculateTrends(c *gin.Context) {
	handleAnalysis(c, "trends", func(req *AnalysisRequest) (any, error) {
		windowSize := 7
		if req.WindowSize != nil {
			windowSize = *req.WindowSize
		}
		return computeTrends(req.Transactions, windowSize)
	})
}

// calculateRiskMetrics handles risk metrics derived from daily returns
func calculateRiskMetrics(c *gin.Context) {
	handleAnalysis(c, "risk_metrics", func(req *AnalysisRequest) (any, error) {
		riskFreeRate := 0.02
		if req.RiskFreeRate != nil {
			riskFreeRate = *req.RiskFreeRate
		}
		return computeRiskMetrics(req.Transactions, riskFreeRate)
	})
}

// forecastBudget handles the linear forecast over monthly net values
func forecastBudget(c *gin.Context) {
	handleAnalysis(c, "forecast", func(req *AnalysisRequest) (any, error) {
		forecastDays := 30
		if req.ForecastDays != nil {
			forecastDays = *req.ForecastDays
		}
		return computeForecast(req.Transactions, forecastDays)
	})
}
