package http

import (
	"errors"
	"net/http"
	"strconv"

	"stock-analyzer/internal/apperr"
	"stock-analyzer/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	base.POST("/analyze", h.analyze)
	base.GET("/history", h.history)
	base.GET("/ranking", h.ranking)
	base.GET("/chart/:stock_code", h.chart)
}

func (h *HttpAPIHandler) analyze(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AnalyzeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.AnalysisService.Analyze(ctx, req.StockCode)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrStockNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no data found for stock code "+req.StockCode, nil))
		case errors.Is(err, apperr.ErrRateLimited):
			return c.JSON(http.StatusTooManyRequests, dto.NewBaseResponse(http.StatusTooManyRequests, "market data provider rate limit reached, please try again in a few minutes", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to analyze stock", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis completed", result))
}

func (h *HttpAPIHandler) history(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be a non-negative integer"))
		}
		limit = parsed
	}

	records, err := h.service.AnalysisService.History(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to load history", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("history loaded", records))
}

func (h *HttpAPIHandler) ranking(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.service.AnalysisService.CurrentMonthRanking(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to load ranking", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ranking loaded", records))
}

func (h *HttpAPIHandler) chart(c echo.Context) error {
	ctx := c.Request().Context()

	stockCode := c.Param("stock_code")
	timeframe := c.QueryParam("timeframe")
	if timeframe == "" {
		timeframe = dto.TimeframeDefault
	}

	data, err := h.service.AnalysisService.Chart(ctx, stockCode, timeframe)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrStockNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no data found for stock code "+stockCode, nil))
		case errors.Is(err, apperr.ErrRateLimited):
			return c.JSON(http.StatusTooManyRequests, dto.NewBaseResponse(http.StatusTooManyRequests, "market data provider rate limit reached, please try again in a few minutes", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to load chart", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("chart loaded", data))
}
