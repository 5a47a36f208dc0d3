// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gophershop/backend/internal/services"
	"github.com/gophershop/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /upload
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "failed to open uploaded file", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, fileHeader)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}
