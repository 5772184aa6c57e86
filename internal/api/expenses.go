package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"custochef/internal/models"
)

type expenseInput struct {
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Kind        models.ExpenseKind `json:"kind"`
	Category    string             `json:"category"`
	Date        string             `json:"date"`
}

func (in *expenseInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.Description == "" {
		errs["description"] = "description is required"
	}
	if in.Amount < 0 {
		errs["amount"] = "amount must not be negative"
	}
	if !models.ValidExpenseKind(in.Kind) {
		errs["kind"] = "kind must be fixed or variable"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *Server) ListExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := s.db.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (s *Server) CreateExpense(c *gin.Context) {
	var in expenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	expense := models.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Category:    in.Category,
		Date:        in.Date,
	}

	if err := s.db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expense"})
		return
	}

	s.recordWrite("expense", "create", expense.ID)
	c.JSON(http.StatusCreated, expense)
}

func (s *Server) UpdateExpense(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	var in expenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := in.validate(); errs != nil {
		respondValidation(c, errs)
		return
	}

	var expense models.Expense
	if s.db.First(&expense, id).RecordNotFound() {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}

	expense.Description = in.Description
	expense.Amount = in.Amount
	expense.Kind = in.Kind
	expense.Category = in.Category
	expense.Date = in.Date

	if err := s.db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update expense"})
		return
	}

	s.recordWrite("expense", "update", expense.ID)
	c.JSON(http.StatusOK, expense)
}

func (s *Server) DeleteExpense(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	if err := s.db.Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		return
	}

	s.recordWrite("expense", "delete", uint(id))
	c.Status(http.StatusNoContent)
}
