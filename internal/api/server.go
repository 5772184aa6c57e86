// Package api exposes the HTTP surface: CRUD over ingredients, recipes,
// dishes, and expenses, the pricing simulator, the AI price advisor, and the
// dashboard endpoints. Derived cost fields are recomputed here on every
// write and never trusted from client input.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"custochef/internal/advisor"
	"custochef/internal/live"
	"custochef/internal/metrics"
	"custochef/internal/monitoring"
)

// Server wires the router to the database and the supporting subsystems.
type Server struct {
	Router  *gin.Engine
	db      *gorm.DB
	advisor *advisor.Advisor
	metrics *metrics.Collector
	monitor *monitoring.Monitor
	hub     *live.Hub
}

// NewServer creates the API server. The advisor may be nil when no LLM
// provider is configured; the suggest endpoint then reports the advisor as
// unavailable.
func NewServer(db *gorm.DB, adv *advisor.Advisor, collector *metrics.Collector, monitor *monitoring.Monitor, hub *live.Hub) *Server {
	s := &Server{
		Router:  gin.Default(),
		db:      db,
		advisor: adv,
		metrics: collector,
		monitor: monitor,
		hub:     hub,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CustoChef API is running"})
	})

	if s.hub != nil {
		s.Router.GET("/ws", s.hub.HandleWebSocket)
	}

	v1 := s.Router.Group("/api/v1")
	{
		v1.GET("/ingredients", s.ListIngredients)
		v1.POST("/ingredients", s.CreateIngredient)
		v1.PUT("/ingredients/:id", s.UpdateIngredient)
		v1.DELETE("/ingredients/:id", s.DeleteIngredient)

		v1.GET("/recipes", s.ListRecipes)
		v1.POST("/recipes", s.CreateRecipe)
		v1.PUT("/recipes/:id", s.UpdateRecipe)
		v1.DELETE("/recipes/:id", s.DeleteRecipe)

		v1.GET("/dishes", s.ListDishes)
		v1.POST("/dishes", s.CreateDish)
		v1.PUT("/dishes/:id", s.UpdateDish)
		v1.DELETE("/dishes/:id", s.DeleteDish)

		v1.GET("/expenses", s.ListExpenses)
		v1.POST("/expenses", s.CreateExpense)
		v1.PUT("/expenses/:id", s.UpdateExpense)
		v1.DELETE("/expenses/:id", s.DeleteExpense)

		v1.POST("/pricing/simulate", s.SimulatePricing)
		v1.POST("/pricing/suggest", s.SuggestPrice)

		v1.GET("/dashboard/summary", s.DashboardSummary)
		v1.GET("/integrity", s.CheckIntegrity)
	}
}

// respondValidation reports field-level validation failures in the shape
// clients render next to form inputs.
func respondValidation(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input", "errors": errors})
}

// recordWrite updates metrics, the dashboard monitor, and the live feed
// after a successful mutation.
func (s *Server) recordWrite(entity, action string, id uint) {
	if s.metrics != nil {
		s.metrics.RecordWrite(entity, action)
	}
	if s.monitor != nil {
		s.monitor.RecordWrite(entity)
	}
	if s.hub != nil {
		s.hub.Broadcast(entity, action, id)
	}
}
