package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// lookupTranslation resolves a raw semantic key and language to the best
// approved translation. Absent is reported as 404 with the raw key echoed
// as the value so clients can fall back to it; store failures are 500.
func (s *Server) lookupTranslation(c echo.Context) error {
	rawKey := c.QueryParam("key")
	lang := c.QueryParam("lang")
	if rawKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key query parameter is required")
	}
	if lang == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "lang query parameter is required")
	}

	result, err := s.lookupSvc.Lookup(c.Request().Context(), rawKey, lang)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up translation")
	}
	if !result.Found {
		result.Value = rawKey
		return c.JSON(http.StatusNotFound, result)
	}
	return c.JSON(http.StatusOK, result)
}
