package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	translations := api.Group("/translations")
	translations.GET("/lookup", s.lookupTranslation)
	translations.GET("", s.listTranslations)
	translations.POST("", s.createTranslation)
	translations.PUT("/:id", s.updateTranslation)
	translations.DELETE("/:id", s.deleteTranslation)

	keys := api.Group("/keys")
	keys.GET("/parse", s.parseKey)
	keys.POST("/generate", s.generateKey)

	contributions := api.Group("/contributions")
	contributions.POST("", s.submitContribution)
	contributions.GET("/pending", s.listPendingContributions)
	contributions.POST("/:id/approve", s.approveContribution)
	contributions.POST("/:id/reject", s.rejectContribution)

	cache := api.Group("/cache")
	cache.GET("/stats", s.cacheStats)
	cache.POST("/invalidate", s.invalidateCacheEntry)
	cache.DELETE("/languages/:lang", s.clearCacheLanguage)
	cache.DELETE("", s.clearCache)
}
