package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jeweladmin-backend/services"
	"jeweladmin-backend/utils"
)

// UploadImage accepts a multipart image and forwards it to the remote upload
// endpoint, returning the resulting URL reference. Size and type limits are
// enforced before the remote call.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "A file part named 'file' is required")
		return
	}

	if fileHeader.Size > services.MaxUploadBytes {
		utils.RespondWithError(c, http.StatusBadRequest, services.ErrAssetTooLarge.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	asset := services.UploadAsset{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	url, err := uploader.Upload(c.Request.Context(), asset)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssetTooLarge), errors.Is(err, services.ErrNotAnImage):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusBadGateway, "Upload failed: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
