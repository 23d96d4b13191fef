package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rank-tags/app/table"
	"github.com/lysyi3m/rank-tags/app/tagger"
	"github.com/lysyi3m/rank-tags/app/tasks"
)

const pageTitle = "SEMRush Position Tracking Tag Generator"

var errBadUpload = errors.New("a CSV file must be uploaded in the \"file\" form field")

func NewHandler(rowTagger *tagger.Tagger, rules tagger.Rules, downloadName string,
	maxUploadSize int64, version string) *Handler {
	return &Handler{
		tagger:        rowTagger,
		rules:         rules,
		downloadName:  downloadName,
		maxUploadSize: maxUploadSize,
		version:       version,
	}
}

func (h *Handler) GetIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.newPage())
}

func (h *Handler) PostTags(c *gin.Context) {
	page := h.newPage()

	sink, task, err := h.runUpload(c)
	if err != nil {
		page.Error = err.Error()
		c.HTML(statusFor(err), "index.html", page)
		return
	}

	href, err := table.DataURI(sink.table)
	if err != nil {
		slog.Error("Download link generation error", "id", task.GetID(), "error", err)
		page.Error = "Failed to build download link"
		c.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}

	page.Tags = sink.table.Column(tagger.ColumnFullTag)
	page.Report = &task.Report
	page.DownloadHref = template.URL(href)
	page.DownloadName = sink.filename

	c.HTML(http.StatusOK, "index.html", page)
}

func (h *Handler) APIPostTags(c *gin.Context) {
	sink, task, err := h.runUpload(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.setReportHeaders(c, task.Report)

	c.JSON(http.StatusOK, tagsResponse{
		Tags:   sink.table.Column(tagger.ColumnFullTag),
		Report: task.Report,
	})
}

func (h *Handler) APIPostTagsCSV(c *gin.Context) {
	sink, task, err := h.runUpload(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	h.setReportHeaders(c, task.Report)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sink.filename))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", sink.csv.Bytes())
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"rules": gin.H{
			"novelty":   len(h.rules.Novelty),
			"placement": len(h.rules.Placement),
		},
	})
}

// runUpload tags the multipart "file" field of the request.
func (h *Handler) runUpload(c *gin.Context) (*responseSink, *tasks.TagTask, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errBadUpload, err)
	}

	sink := &responseSink{}
	task := tasks.NewTagTask(tasks.TaskTypeTagUpload, &uploadSource{header: header}, sink, h.tagger, h.downloadName)

	if err := tasks.Run(c.Request.Context(), task); err != nil {
		return nil, nil, err
	}

	return sink, task, nil
}

func (h *Handler) newPage() indexPage {
	return indexPage{
		Title:   pageTitle,
		Version: h.version,
	}
}

func (h *Handler) setReportHeaders(c *gin.Context, report tagger.Report) {
	c.Header("X-Rows-Total", strconv.Itoa(report.Total))
	c.Header("X-Rows-Kept", strconv.Itoa(report.Kept))
	c.Header("X-Rows-Dropped", strconv.Itoa(report.Dropped))
}

func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	var parseErr *csv.ParseError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadUpload):
		return http.StatusBadRequest
	case errors.Is(err, tagger.ErrMissingColumn), errors.Is(err, table.ErrNoHeader), errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
