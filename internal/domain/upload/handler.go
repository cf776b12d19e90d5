package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"fileshelf/internal/pkg/response"
)

// Handler exposes the file record store over HTTP. The upload directory comes
// from configuration, never from the request.
type Handler struct {
	service   *Service
	uploadDir string
	maxSize   int64
	log       *log.Logger
}

func NewHandler(service *Service, uploadDir string, maxSize int64, logger *log.Logger) *Handler {
	return &Handler{service: service, uploadDir: uploadDir, maxSize: maxSize, log: logger}
}

// Upload godoc
// @Summary Upload a file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /files [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, ok := h.formFile(c)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable file")
		return
	}
	defer file.Close()

	f, err := h.service.Create(c.Request.Context(), Input{Name: fileHeader.Filename, Content: file}, h.uploadDir)
	if err != nil {
		h.writeError(c, err, "UPLOAD_FAILED", "Failed to save file")
		return
	}

	response.Success(c, http.StatusCreated, f)
}

// Update godoc
// @Summary Replace the file behind a record
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "File ID"
// @Param file formData file true "Replacement file"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,413,500 {object} map[string]interface{}
// @Router /files/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fileHeader, ok := h.formFile(c)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable file")
		return
	}
	defer file.Close()

	f, err := h.service.Replace(c.Request.Context(), id, Input{Name: fileHeader.Filename, Content: file}, h.uploadDir)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED", "Failed to update file")
		return
	}

	response.Success(c, http.StatusOK, f)
}

// Delete godoc
// @Summary Delete a file (blob + record)
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /files/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete file")
		return
	}

	response.Message(c, http.StatusOK, "deleted")
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	f, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "LOOKUP_FAILED", "Failed to load file")
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) List(c *gin.Context) {
	files, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "LIST_FAILED", "Failed to list files")
		return
	}
	response.Success(c, http.StatusOK, files)
}

// Content streams the blob with a sniffed content type.
func (h *Handler) Content(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	f, blob, err := h.service.Open(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "DOWNLOAD_FAILED", "Failed to open file")
		return
	}
	defer blob.Close()

	info, err := blob.Stat()
	if err != nil {
		h.writeError(c, err, "DOWNLOAD_FAILED", "Failed to open file")
		return
	}
	mime, err := mimetype.DetectReader(blob)
	if err != nil {
		h.writeError(c, err, "DOWNLOAD_FAILED", "Failed to read file")
		return
	}
	if _, err := blob.Seek(0, io.SeekStart); err != nil {
		h.writeError(c, err, "DOWNLOAD_FAILED", "Failed to read file")
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), mime.String(), blob, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.OriginalName()),
	})
}

func (h *Handler) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return nil, false
	}
	if h.maxSize > 0 && fileHeader.Size > h.maxSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", ErrFileTooLarge.Error())
		return nil, false
	}
	return fileHeader, true
}

func (h *Handler) writeError(c *gin.Context, err error, code, message string) {
	switch {
	case errors.Is(err, ErrInvalidFileType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
	case errors.Is(err, ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		_ = c.Error(err)
		h.log.Error(message, "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid file id")
		return 0, false
	}
	return uint(id), true
}
