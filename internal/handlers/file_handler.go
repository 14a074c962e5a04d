package handlers

import (
	"net/http"

	"codecheck_backend/internal/middleware"
	"codecheck_backend/internal/services"
	"codecheck_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	fileService services.FileService
}

func NewFileHandler(base *BaseHandler, fileService services.FileService) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		fileService: fileService,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("", h.Upload)
		files.GET("", h.ListMyFiles)
		files.GET("/:fileId", h.GetFile)
		files.PUT("/:fileId", h.Overwrite)
		files.DELETE("/:fileId", h.Delete)
	}
}

// Upload accepts a multipart form with a "file" part and an optional
// "description" field.
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("no file provided"))
		return
	}

	description := c.PostForm("description")

	response, err := h.fileService.Upload(c.Request.Context(), h.GetDB(c), userID, fileHeader, description)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *FileHandler) ListMyFiles(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	files, err := h.fileService.ListByOwner(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *FileHandler) GetFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	detail, err := h.fileService.GetDetail(h.GetDB(c), userID, c.Param("fileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Overwrite replaces a file's content and/or description in place. The
// "file" part is optional: a description-only update is allowed.
func (h *FileHandler) Overwrite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	description := c.PostForm("description")

	response, err := h.fileService.Overwrite(c.Request.Context(), h.GetDB(c), userID, c.Param("fileId"), fileHeader, description)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), h.GetDB(c), userID, c.Param("fileId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}
