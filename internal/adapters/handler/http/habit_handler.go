package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitual/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	// ID lets offline clients pick the identifier; retries are idempotent.
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

type renameHabitRequest struct {
	Name    string `json:"name" binding:"required"`
	Version int    `json:"version"`
}

type syncResponse struct {
	Changes   []*domain.Habit `json:"changes"`
	Timestamp time.Time       `json:"timestamp"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/sync", h.Sync)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Rename)
		habits.DELETE("/:id", h.Delete)
		habits.GET("/:id/history", h.History)
	}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHabitRequest  true  "habit"
// @Success      201   {object}  domain.HabitView
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		ID:     req.ID,
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondView(c, http.StatusCreated, habit)
}

// List godoc
// @Summary      List habits with streaks and the last 7 days
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        X-Timezone  header  string  false  "IANA zone"
// @Success      200  {array}  domain.HabitView
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	views, err := h.svc.ViewAll(list, middleware.GetLocation(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Sync godoc
// @Summary      Habits changed since last_sync, deletions included
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        last_sync  query     string  false  "RFC3339 timestamp"
// @Success      200        {object}  syncResponse
// @Failure      400        {object}  errorResponse
// @Router       /habits/sync [get]
func (h *HabitHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	var lastSync time.Time
	if raw := c.Query("last_sync"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid last_sync format, use RFC3339"})
			return
		}
		lastSync = parsed
	}

	// Taken before the query so that concurrent writes show up next time.
	now := time.Now().UTC()

	changes, err := h.svc.GetDelta(c.Request.Context(), userID, lastSync)
	if err != nil {
		handleError(c, err)
		return
	}
	if changes == nil {
		changes = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, syncResponse{Changes: changes, Timestamp: now})
}

// Get godoc
// @Summary      One habit with its summary
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "habit id"
// @Success      200  {object}  domain.HabitView
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondView(c, http.StatusOK, habit)
}

// Rename godoc
// @Summary      Rename a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "habit id"
// @Param        body  body      renameHabitRequest  true  "new name and known version"
// @Success      200   {object}  domain.HabitView
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /habits/{id} [put]
func (h *HabitHandler) Rename(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	var req renameHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	habit, err := h.svc.Rename(c.Request.Context(), services.RenameHabitInput{
		ID:      c.Param("id"),
		UserID:  userID,
		Name:    req.Name,
		Version: req.Version,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondView(c, http.StatusOK, habit)
}

// Delete godoc
// @Summary      Soft-delete a habit
// @Tags         habits
// @Security     BearerAuth
// @Param        id  path  string  true  "habit id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// History godoc
// @Summary      Current streak and the last 7 days of a habit
// @Tags         habits
// @Produce      json
// @Security     BearerAuth
// @Param        id          path    string  true   "habit id"
// @Param        X-Timezone  header  string  false  "IANA zone"
// @Success      200  {object}  domain.HabitSummary
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id}/history [get]
func (h *HabitHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	view, err := h.svc.View(habit, middleware.GetLocation(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.Summary)
}

func (h *HabitHandler) respondView(c *gin.Context, status int, habit *domain.Habit) {
	view, err := h.svc.View(habit, middleware.GetLocation(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(status, view)
}
