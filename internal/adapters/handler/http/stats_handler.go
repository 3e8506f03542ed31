package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitual/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitual/internal/core/domain"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyStats)
}

// GetWeeklyStats godoc
// @Summary      Completion rates over a date range
// @Description  Defaults to the 7 days ending today in the caller's zone. At most 366 days.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query   string  false  "YYYY-MM-DD"
// @Param        end_date    query   string  false  "YYYY-MM-DD"
// @Param        X-Timezone  header  string  false  "IANA zone"
// @Success      200  {object}  domain.WeeklyStats
// @Failure      400  {object}  errorResponse
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	input := domain.StatsInput{
		UserID:   userID,
		Location: middleware.GetLocation(c),
	}

	var err error
	if input.StartDate, err = optionalDate(c, "start_date"); err != nil {
		handleError(c, err)
		return
	}
	if input.EndDate, err = optionalDate(c, "end_date"); err != nil {
		handleError(c, err)
		return
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func optionalDate(c *gin.Context, param string) (*domain.Date, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}

	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, &domain.ValidationError{Field: param, Value: raw, Reason: "expected YYYY-MM-DD"}
	}
	return &d, nil
}
