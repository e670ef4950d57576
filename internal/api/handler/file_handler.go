package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/api/metrics"
)

// FileHandler streams milestone deliverables from disk. Files live under
// uploadsRoot/<milestoneID>/<filename>; both path segments come from the
// URL and are validated so a request can never resolve outside the root.
type FileHandler struct {
	uploadsRoot string
}

func NewFileHandler(uploadsRoot string) *FileHandler {
	return &FileHandler{uploadsRoot: uploadsRoot}
}

// safeSegment reports whether s is usable as a single path element: no
// separators, no parent references, not empty.
func safeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	if strings.ContainsAny(s, `/\`) {
		return false
	}
	// Reject anything percent-decoding could have smuggled in.
	return !strings.Contains(s, "..")
}

// Download handles GET /api/files/:milestoneID/:filename.
//
// @Summary      Download a milestone deliverable
// @Tags         files
// @Produce      octet-stream
// @Param        milestoneID  path  string  true  "Milestone id"
// @Param        filename     path  string  true  "Original file name"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/files/{milestoneID}/{filename} [get]
func (h *FileHandler) Download(c echo.Context) error {
	milestoneID := c.Param("milestoneID")
	filename := c.Param("filename")

	if !safeSegment(milestoneID) || !safeSegment(filename) {
		metrics.DeliverableDownloadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file path")
	}

	root, err := filepath.Abs(h.uploadsRoot)
	if err != nil {
		return err
	}

	path := filepath.Join(root, milestoneID, filename)
	// Belt and braces: the joined path must still sit under the root.
	if !strings.HasPrefix(path, root+string(filepath.Separator)) {
		metrics.DeliverableDownloadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file path")
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		metrics.DeliverableDownloadsTotal.WithLabelValues("missing").Inc()
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	metrics.DeliverableDownloadsTotal.WithLabelValues("ok").Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, f)
}
