package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// parseKey exposes the semantic key resolver: it returns the structured
// form of a raw key together with its validity. Parsing never fails, so
// even malformed keys yield a best-effort result.
func (s *Server) parseKey(c echo.Context) error {
	raw := c.QueryParam("key")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key query parameter is required")
	}
	key := s.resolver.Parse(raw)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"intent":  key.Intent,
		"context": key.Context,
		"raw":     key.Raw,
		"valid":   s.resolver.IsValidKey(raw),
	})
}

func (s *Server) generateKey(c echo.Context) error {
	var req struct {
		Intent  string `json:"intent"`
		Context string `json:"context,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Intent == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "intent is required")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"key": s.resolver.Generate(req.Intent, req.Context),
	})
}
