package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) cacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.cache.Stats(c.Request().Context()))
}

func (s *Server) invalidateCacheEntry(c echo.Context) error {
	var req struct {
		Key          string `json:"key"`
		LanguageCode string `json:"language_code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Key == "" || req.LanguageCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key and language_code are required")
	}
	s.cache.Delete(c.Request().Context(), req.Key, req.LanguageCode)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) clearCacheLanguage(c echo.Context) error {
	lang := c.Param("lang")
	if lang == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "language code is required")
	}
	s.cache.ClearLanguage(c.Request().Context(), lang)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) clearCache(c echo.Context) error {
	s.cache.ClearAll(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
