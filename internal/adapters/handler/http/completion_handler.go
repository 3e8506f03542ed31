package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitual/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

type CompletionHandler struct {
	svc    *services.CompletionService
	habits *services.HabitService
}

func NewCompletionHandler(svc *services.CompletionService, habits *services.HabitService) *CompletionHandler {
	return &CompletionHandler{
		svc:    svc,
		habits: habits,
	}
}

type replaceCompletionsRequest struct {
	Completions []string `json:"completions" binding:"required"`
	Version     int      `json:"version"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	completions := router.Group("/habits/:id/completions")
	{
		completions.PUT("", h.Replace)
		completions.PUT("/:date", h.Mark)
		completions.DELETE("/:date", h.Unmark)
	}
}

// Mark godoc
// @Summary      Mark a habit complete on a date
// @Tags         completions
// @Produce      json
// @Security     BearerAuth
// @Param        id          path    string  true   "habit id"
// @Param        date        path    string  true   "YYYY-MM-DD"
// @Param        X-Timezone  header  string  false  "IANA zone"
// @Success      200  {object}  domain.HabitView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id}/completions/{date} [put]
func (h *CompletionHandler) Mark(c *gin.Context) {
	h.toggle(c, true)
}

// Unmark godoc
// @Summary      Remove the completion of a date
// @Tags         completions
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "habit id"
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  domain.HabitView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id}/completions/{date} [delete]
func (h *CompletionHandler) Unmark(c *gin.Context) {
	h.toggle(c, false)
}

func (h *CompletionHandler) toggle(c *gin.Context, completed bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	loc := middleware.GetLocation(c)
	habit, err := h.svc.Toggle(c.Request.Context(), services.ToggleCompletionInput{
		HabitID:   c.Param("id"),
		UserID:    userID,
		Date:      c.Param("date"),
		Completed: completed,
		Location:  loc,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	view, err := h.habits.View(habit, loc)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Replace godoc
// @Summary      Replace the whole completion set of a habit
// @Tags         completions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "habit id"
// @Param        body  body      replaceCompletionsRequest  true  "completion set"
// @Success      200   {object}  domain.HabitView
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /habits/{id}/completions [put]
func (h *CompletionHandler) Replace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	var req replaceCompletionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	loc := middleware.GetLocation(c)
	habit, err := h.svc.Replace(c.Request.Context(), services.ReplaceCompletionsInput{
		HabitID:     c.Param("id"),
		UserID:      userID,
		Completions: req.Completions,
		Version:     req.Version,
		Location:    loc,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	view, err := h.habits.View(habit, loc)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
