package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// SignalHandler handles HTTP requests for signals, catalysts, and the
// value screen.
type SignalHandler struct {
	scannerService  service.ScannerService
	catalystService service.CatalystService
	valueService    service.ValueService
	briefingService service.BriefingService
	logger          *logger.Logger
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(
	scannerService service.ScannerService,
	catalystService service.CatalystService,
	valueService service.ValueService,
	briefingService service.BriefingService,
	log *logger.Logger,
) *SignalHandler {
	return &SignalHandler{
		scannerService:  scannerService,
		catalystService: catalystService,
		valueService:    valueService,
		briefingService: briefingService,
		logger:          log,
	}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/signals/:code", h.GetSignal)
	g.GET("/signals/:code/briefing", h.GetBriefing)
	g.POST("/signals/scan", h.ScanUniverse)
	g.GET("/catalysts", h.ListCatalysts)
	g.POST("/catalysts/detect", h.DetectCatalysts)
	g.POST("/catalysts/track", h.TrackCatalysts)
	g.GET("/screener/value", h.ScreenValue)
}

// GetSignal godoc
// @Summary Get the composite signal for one stock
// @Description Scores the four dimensions for a stock as of today or the given date
// @Tags signals
// @Produce  json
// @Param   code    path     string  true   "Stock code"
// @Param   as_of   query    string  false  "As-of date (YYYY-MM-DD, KST)"
// @Success 200 {object} dto.CompositeSignal
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/{code} [get]
func (h *SignalHandler) GetSignal(c echo.Context) error {
	code := c.Param("code")
	asOf, err := parseAsOfParam(c.QueryParam("as_of"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	signal, err := h.scannerService.ScoreDimensions(c.Request().Context(), code, asOf)
	if err != nil {
		h.logger.Error("Failed to score stock", logger.StringField("stock_code", code), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, signal)
}

// GetBriefing godoc
// @Summary Get the AI briefing for one stock
// @Description Returns the cached or freshly generated narrative briefing
// @Tags signals
// @Produce  json
// @Param   code  path  string  true  "Stock code"
// @Success 200 {object} entity.SignalBriefing
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/{code}/briefing [get]
func (h *SignalHandler) GetBriefing(c echo.Context) error {
	code := c.Param("code")
	briefing, err := h.briefingService.GetBriefing(c.Request().Context(), code)
	if err != nil {
		h.logger.Error("Failed to build briefing", logger.StringField("stock_code", code), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, briefing)
}

// ScanUniverse godoc
// @Summary Scan a stock universe
// @Description Scores every requested stock and returns the ranked composite signals
// @Tags signals
// @Accept  json
// @Produce  json
// @Param   request  body  dto.ScanRequest  true  "Scan request"
// @Success 200 {object} dto.ScanResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/scan [post]
func (h *SignalHandler) ScanUniverse(c echo.Context) error {
	var req dto.ScanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	result, err := h.scannerService.ScanUniverse(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Universe scan failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// ListCatalysts godoc
// @Summary List catalyst events
// @Description Lists catalyst events, optionally filtered by status
// @Tags catalysts
// @Produce  json
// @Param   status  query  string  false  "active | weakening | expired"
// @Param   limit   query  int     false  "Maximum rows"
// @Success 200 {array} entity.CatalystEvent
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalysts [get]
func (h *SignalHandler) ListCatalysts(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}

	events, err := h.catalystService.ListCatalysts(c.Request().Context(), c.QueryParam("status"), limit)
	if err != nil {
		h.logger.Error("Failed to list catalysts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, events)
}

// DetectCatalysts godoc
// @Summary Run catalyst detection
// @Description Runs the detection pass for the given trading day
// @Tags catalysts
// @Produce  json
// @Param   as_of  query  string  false  "As-of date (YYYY-MM-DD, KST)"
// @Success 200 {object} map[string]int
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalysts/detect [post]
func (h *SignalHandler) DetectCatalysts(c echo.Context) error {
	asOf, err := parseAsOfParam(c.QueryParam("as_of"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	created, err := h.catalystService.DetectNewCatalysts(c.Request().Context(), asOf)
	if err != nil {
		h.logger.Error("Catalyst detection failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"created": created})
}

// TrackCatalysts godoc
// @Summary Run catalyst tracking
// @Description Runs the daily tracking pass for the given trading day
// @Tags catalysts
// @Produce  json
// @Param   as_of  query  string  false  "As-of date (YYYY-MM-DD, KST)"
// @Success 200 {object} dto.TrackingResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalysts/track [post]
func (h *SignalHandler) TrackCatalysts(c echo.Context) error {
	asOf, err := parseAsOfParam(c.QueryParam("as_of"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := h.catalystService.UpdateTracking(c.Request().Context(), asOf)
	if err != nil {
		if errors.Is(err, dto.ErrInconsistentState) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Catalyst tracking failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// ScreenValue godoc
// @Summary Run the fundamental value screen
// @Description Scores the latest statement of every covered stock
// @Tags screener
// @Produce  json
// @Param   min_score  query  number  false  "Minimum total score"
// @Param   limit      query  int     false  "Maximum rows"
// @Param   sort_by    query  string  false  "total_score | upside_pct"
// @Success 200 {array} dto.ValueMetrics
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /screener/value [get]
func (h *SignalHandler) ScreenValue(c echo.Context) error {
	var req dto.ValueScreenRequest
	if raw := c.QueryParam("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid min_score"})
		}
		req.MinScore = parsed
	}
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		req.Limit = parsed
	}
	req.SortBy = c.QueryParam("sort_by")

	results, err := h.valueService.ScreenValue(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Value screen failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, results)
}

func parseAsOfParam(raw string) (time.Time, error) {
	if raw == "" {
		return utils.TruncateToDate(utils.TimeNowKST()), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, utils.LocationKST)
	if err != nil {
		return time.Time{}, errors.New("invalid as_of, expected YYYY-MM-DD")
	}
	return parsed, nil
}
