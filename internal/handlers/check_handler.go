package handlers

import (
	"net/http"

	"codecheck_backend/internal/middleware"
	"codecheck_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CheckHandler struct {
	*BaseHandler
	checkService services.CheckService
}

func NewCheckHandler(base *BaseHandler, checkService services.CheckService) *CheckHandler {
	return &CheckHandler{
		BaseHandler:  base,
		checkService: checkService,
	}
}

func (h *CheckHandler) RegisterRoutes(r *gin.RouterGroup) {
	check := r.Group("/check")
	check.Use(middleware.AuthMiddleware())
	{
		check.GET("/file/:fileId", h.Recheck)
	}
}

// Recheck enqueues a fresh check of the file. The work itself runs on the
// job queue; the response only confirms that it was accepted.
func (h *CheckHandler) Recheck(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.checkService.RequestRecheck(c.Request.Context(), h.GetDB(c), userID, c.Param("fileId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "ok",
		"message": "File sent for recheck.",
	})
}
