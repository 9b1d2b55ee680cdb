package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"draftbook-backend/internal/domains/export"
	"draftbook-backend/internal/shared/response"
	"draftbook-backend/pkg/logger"
)

// Budget for the three Google round trips (create, insert, share).
const exportTimeout = 30 * time.Second

type ExportHandler struct {
	exporter export.Exporter
}

func NewExportHandler(exporter export.Exporter) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
	}
}

type exportRequest struct {
	Text string `json:"text"`
}

// CreateDoc - POST /google/create-doc
// Exports the submitted text into a new shared Google Doc.
func (h *ExportHandler) CreateDoc(c *gin.Context) {
	h.export(c, "New Google Docs File", false)
}

// UploadDoc - POST /google/upload-doc
// Same export, but rejects empty text: there is nothing to upload until
// a draft exists.
func (h *ExportHandler) UploadDoc(c *gin.Context) {
	h.export(c, "Uploaded Google Docs File", true)
}

func (h *ExportHandler) export(c *gin.Context, title string, requireText bool) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if requireText && strings.TrimSpace(req.Text) == "" {
		response.BadRequest(c, "Please create a Google Docs file first")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
	defer cancel()

	doc, err := h.exporter.Export(ctx, title, req.Text)
	if err != nil {
		logger.Error("document export failed", err)
		response.BadGateway(c, "Failed to create Google Docs file")
		return
	}

	response.Success(c, http.StatusOK, doc)
}
