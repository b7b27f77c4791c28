package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openlocale/translation-service/internal/core/domain/translation"
)

func (s *Server) createTranslation(c echo.Context) error {
	var req translation.CreateTranslationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Key == "" || req.LanguageCode == "" || req.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key, language_code and value are required")
	}
	t, err := s.translationSvc.CreateTranslation(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTranslation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid translation ID")
	}
	var req translation.UpdateTranslationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t, err := s.translationSvc.UpdateTranslation(c.Request().Context(), id, &req)
	if err != nil {
		if errors.Is(err, translation.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "translation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTranslation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid translation ID")
	}
	if err := s.translationSvc.DeleteTranslation(c.Request().Context(), id); err != nil {
		if errors.Is(err, translation.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "translation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listTranslations(c echo.Context) error {
	lang := c.QueryParam("lang")
	limit := 20
	offset := 0
	if l := c.QueryParam("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil {
			offset = v
		}
	}
	translations, total, err := s.translationSvc.ListTranslations(c.Request().Context(), lang, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"translations": translations, "total": total, "limit": limit, "offset": offset})
}
