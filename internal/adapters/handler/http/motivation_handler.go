package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitual/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitual/internal/core/services"
)

type MotivationHandler struct {
	svc *services.MotivationService
}

func NewMotivationHandler(svc *services.MotivationService) *MotivationHandler {
	return &MotivationHandler{svc: svc}
}

func (h *MotivationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/habits/:id/motivation", h.Generate)
}

// Generate godoc
// @Summary      Motivational message for a habit
// @Description  Never fails because of the language model: a static message is returned instead.
// @Tags         motivation
// @Produce      json
// @Security     BearerAuth
// @Param        id          path    string  true   "habit id"
// @Param        X-Timezone  header  string  false  "IANA zone"
// @Success      200  {object}  domain.MotivationResult
// @Failure      404  {object}  errorResponse
// @Router       /habits/{id}/motivation [post]
func (h *MotivationHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user context missing"})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), c.Param("id"), userID, middleware.GetLocation(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
