package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"digibook/services/wizard"
	"digibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadFiles handles POST /api/wizard/sessions/:id/files (multipart field "files").
func (h *WizardHandler) UploadFiles(c *gin.Context) {
	logger := getLogger(c)
	sessionID := c.Param("id")

	ctrl, err := h.Sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	service := ctrl.Record().Service
	if service == "" {
		respondError(c, wizard.ErrNoService)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No files provided", `expected multipart field "files"`)
		return
	}

	var (
		uploads  []wizard.Upload
		rejected []wizard.Rejection
	)
	for _, fh := range headers {
		if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
			rejected = append(rejected, wizard.Rejection{
				Name:   fh.Filename,
				Reason: fmt.Sprintf("File exceeds the %d MB limit", h.MaxUploadBytes>>20),
			})
			continue
		}
		data, err := readFormFile(fh)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Failed to read uploaded file", err.Error())
			return
		}
		uploads = append(uploads, wizard.Upload{Name: fh.Filename, Type: fh.Header.Get("Content-Type"), Data: data})
	}

	accepted, notices, err := wizard.ProcessUploads(c.Request.Context(), service, uploads, h.Storage)
	if err != nil {
		logger.Error("File upload failed", zap.String("sessionID", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "File upload failed", err.Error())
		return
	}
	rejected = append(rejected, notices...)

	ctrl.AddFiles(accepted)
	if err := h.Sessions.Save(c.Request.Context(), sessionID, ctrl); err != nil {
		respondError(c, fmt.Errorf("save session: %w", err))
		return
	}
	logger.Info("Files attached to wizard session",
		zap.String("sessionID", sessionID),
		zap.Int("accepted", len(accepted)),
		zap.Int("rejected", len(rejected)))

	if rejected == nil {
		rejected = []wizard.Rejection{}
	}
	c.JSON(http.StatusOK, gin.H{
		"state":    newSessionState(sessionID, ctrl),
		"accepted": accepted,
		"rejected": rejected,
	})
}

// RemoveFile handles DELETE /api/wizard/sessions/:id/files/:fileId.
func (h *WizardHandler) RemoveFile(c *gin.Context) {
	fileID := c.Param("fileId")
	h.mutate(c, func(ctrl *wizard.Controller) (*bool, error) {
		removed := ctrl.RemoveFile(fileID)
		return &removed, nil
	})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
