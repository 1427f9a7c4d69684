package api

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentdash/config"
	"rentdash/internal/dataset"
	"rentdash/internal/models"
	"rentdash/internal/pipeline"
	"rentdash/internal/presentation"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

type Handler struct {
	provider *dataset.Provider
	renderer *presentation.Renderer
	logger   *logrus.Logger
}

type PageQuery struct {
	City   string `form:"city"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func NewHandler(provider *dataset.Provider, renderer *presentation.Renderer, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if renderer == nil {
		renderer = presentation.NewRenderer(800, 400)
	}

	return &Handler{
		provider: provider,
		renderer: renderer,
		logger:   logger,
	}
}

// view loads the dataset and applies the city query parameter. On failure the
// response has already been written.
func (h *Handler) view(c *gin.Context) (pipeline.View, bool) {
	ds, err := h.provider.Dataset()
	if err != nil {
		h.logger.WithError(err).WithField("path", h.provider.Path()).Error("Failed to load dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return pipeline.View{}, false
	}

	criterion := models.NewFilterCriterion(c.Query("city"))
	return pipeline.Filter(ds, criterion), true
}

func (h *Handler) GetCities(c *gin.Context) {
	ds, err := h.provider.Dataset()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return
	}

	c.JSON(http.StatusOK, config.GetCityNames(ds))
}

func (h *Handler) GetSummary(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	stats := pipeline.Summarize(view)
	c.JSON(http.StatusOK, gin.H{
		"city":    view.Criterion().Label(),
		"summary": stats,
		"lines":   presentation.SummaryLines(stats),
	})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	var query PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	ds, err := h.provider.Dataset()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dataset"})
		return
	}

	start := time.Now()
	dashboard, err := presentation.Build(ds, models.NewFilterCriterion(query.City), pageSize(query.Limit))
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"city":     dashboard.Selected,
		"records":  dashboard.Summary.Count,
		"duration": time.Since(start).String(),
	}).Debug("Built dashboard")

	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) GetChart(c *gin.Context) {
	chart, ok := h.chart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *Handler) GetChartPNG(c *gin.Context) {
	chart, ok := h.chart(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPNG(chart, &buf); err != nil {
		if errors.Is(err, presentation.ErrEmptyChart) {
			c.JSON(http.StatusNotFound, gin.H{"error": presentation.NoDataMessage})
			return
		}
		h.logger.WithError(err).WithField("chart", chart.ID).Error("Failed to render chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) chart(c *gin.Context) (presentation.Chart, bool) {
	view, ok := h.view(c)
	if !ok {
		return presentation.Chart{}, false
	}

	id := c.Param("id")
	chart, err := presentation.BuildChart(view, id)
	if err != nil {
		if errors.Is(err, presentation.ErrUnknownChart) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown chart: " + id})
			return presentation.Chart{}, false
		}
		h.logger.WithError(err).WithField("chart", id).Error("Failed to build chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build chart"})
		return presentation.Chart{}, false
	}
	return chart, true
}

func (h *Handler) GetProperties(c *gin.Context) {
	var query PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if query.Offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must not be negative"})
		return
	}

	view, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, presentation.BuildTable(view, query.Offset, pageSize(query.Limit)))
}

func (h *Handler) Health(c *gin.Context) {
	if _, err := h.provider.Dataset(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
