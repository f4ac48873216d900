package controller

import (
	"net/http"
	"path/filepath"

	"github.com/ctrls-academy/exam-platform/internal/dto"
	"github.com/ctrls-academy/exam-platform/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps question attachments and file-upload answers.
const maxUploadBytes = 20 << 20

type UploadController struct {
	blobs storage.BlobStore
}

func NewUploadController(blobs storage.BlobStore) *UploadController {
	return &UploadController{blobs: blobs}
}

// Upload godoc
// @Summary Upload a file
// @Description Stores a file (question attachment or file-upload answer) and returns its public URL. The URL goes into file_url fields; the file itself is never stored in the database.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload, max 20 MB"
// @Success 201 {object} dto.UploadResponse "Public URL of the stored file"
// @Failure 400 {object} dto.ErrorResponse "Missing file or file too large"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /uploads [post]
func (ctl *UploadController) Upload(c *gin.Context) {
	if _, ok := MustAuth(c); !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing file field"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "File exceeds the 20 MB limit"})
		return
	}

	f, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Upload: failed to open multipart file")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}
	defer f.Close()

	key := uuid.NewString() + filepath.Ext(header.Filename)
	url, err := ctl.blobs.Put(key, f)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Upload: failed to store blob")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
