package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"custochef/internal/advisor"
	"custochef/internal/costing"
)

// simulateRequest drives the pricing simulator. Exactly one of DesiredMargin
// and SellingPrice must be set: margin→price or price→margin.
type simulateRequest struct {
	TotalCost     float64  `json:"total_cost"`
	DesiredMargin *float64 `json:"desired_margin,omitempty"`
	SellingPrice  *float64 `json:"selling_price,omitempty"`
}

type simulateResponse struct {
	TotalCost    float64 `json:"total_cost"`
	SellingPrice float64 `json:"selling_price"`
	Margin       float64 `json:"margin"`
	Profit       float64 `json:"profit"`
}

func (s *Server) SimulatePricing(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := make(map[string]string)
	if req.TotalCost < 0 {
		errs["total_cost"] = "total cost must not be negative"
	}
	if (req.DesiredMargin == nil) == (req.SellingPrice == nil) {
		errs["desired_margin"] = "provide exactly one of desired_margin or selling_price"
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	var resp simulateResponse
	resp.TotalCost = req.TotalCost

	if req.DesiredMargin != nil {
		price, err := costing.PriceFromMargin(req.TotalCost, *req.DesiredMargin)
		if errors.Is(err, costing.ErrInvalidMargin) {
			respondValidation(c, map[string]string{"desired_margin": "desired margin must be at least 0 and below 1"})
			return
		}
		resp.SellingPrice = price
		resp.Margin = costing.MarginFromPrice(price, req.TotalCost)
	} else {
		resp.SellingPrice = *req.SellingPrice
		resp.Margin = costing.MarginFromPrice(*req.SellingPrice, req.TotalCost)
	}
	resp.Profit = costing.Profit(resp.SellingPrice, resp.TotalCost)

	c.JSON(http.StatusOK, resp)
}

// SuggestPrice forwards aggregate figures to the AI advisor. Provider
// failures surface as a generic error; there is no retry and no computed
// fallback.
func (s *Server) SuggestPrice(c *gin.Context) {
	if s.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "price advisor is not configured"})
		return
	}

	var req advisor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	suggestion, err := s.advisor.Suggest(c.Request.Context(), req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordAdvisorCall("error", time.Since(start))
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "price suggestion unavailable"})
		return
	}
	if s.metrics != nil {
		s.metrics.RecordAdvisorCall("ok", time.Since(start))
	}

	c.JSON(http.StatusOK, suggestion)
}
