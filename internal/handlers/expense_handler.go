package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/export"
	"spendlog/internal/logger"
	"spendlog/internal/models"
	"spendlog/internal/services"
)

const defaultRecentLimit = 5

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest is the payload for creating or replacing an expense.
type ExpenseRequest struct {
	Description string  `json:"description" binding:"required,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,expense_category"`
	Date        string  `json:"date" binding:"required,iso_date"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
	UserID      *int64  `json:"userId" binding:"omitempty,gt=0"`
}

func (r ExpenseRequest) toInput() models.ExpenseInput {
	return models.ExpenseInput{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    models.Category(r.Category),
		Date:        r.Date,
		Notes:       r.Notes,
		UserID:      r.UserID,
	}
}

// ListExpenses handles listing expenses
// @Summary     List expenses
// @Description List expenses newest first, optionally filtered by date range and category
// @Tags        expenses
// @Produce     json
// @Param       startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category  query string false "Exact category name"
// @Param       limit     query int    false "Maximum number of expenses to return"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	limit, err := parseLimit(c, 0)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if limit > 0 && len(expenses) > limit {
		expenses = expenses[:limit]
	}

	c.JSON(http.StatusOK, expenses)
}

// RecentExpenses handles the dashboard's recent expense list
// @Summary     Recent expenses
// @Description Get the newest expenses regardless of any filter
// @Tags        expenses
// @Produce     json
// @Param       limit query int false "Number of expenses (default 5)"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid limit"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/recent [get]
func (h *ExpenseHandler) RecentExpenses(c *gin.Context) {
	limit, err := parseLimit(c, defaultRecentLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.RecentExpenses(c.Request.Context(), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := req.toInput()
	if input.UserID == nil {
		if userID, err := getUserID(c); err == nil && userID > 0 {
			input.UserID = &userID
		}
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles replacing an expense
// @Summary     Update an expense
// @Description Replace the editable fields of an expense. Omitted notes and userId keep their stored values.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path int            true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} models.Expense "Expense updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles deleting an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Param       id path int true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStatistics handles the dashboard summary
// @Summary     Expense statistics
// @Description Totals, daily average, highest expense, most frequent category and per-category breakdown for the filtered expenses
// @Tags        expenses
// @Produce     json
// @Param       startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category  query string false "Exact category name"
// @Success     200 {object} models.Statistics "Statistics"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/stats/summary [get]
func (h *ExpenseHandler) GetStatistics(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.expenseService.GetStatistics(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV streams the filtered expenses as a CSV attachment
// @Summary     Export expenses as CSV
// @Tags        expenses
// @Produce     text/csv
// @Param       startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       category  query string false "Exact category name"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/export/csv [get]
func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(filter)+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, expenses); err != nil {
		logger.Get().Errorw("csv export failed", "error", err, "path", c.Request.URL.Path)
	}
}
