package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/ports"
	customMiddleware "github.com/openlocale/translation-service/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	LookupService       ports.LookupService
	TranslationService  ports.TranslationService
	ContributionService ports.ContributionService
	Resolver            ports.KeyResolver
	Cache               ports.TranslationCache
	RateLimiterService  ports.RateLimiterService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	lookupSvc       ports.LookupService
	translationSvc  ports.TranslationService
	contributionSvc ports.ContributionService
	resolver        ports.KeyResolver
	cache           ports.TranslationCache
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		lookupSvc:       deps.LookupService,
		translationSvc:  deps.TranslationService,
		contributionSvc: deps.ContributionService,
		resolver:        deps.Resolver,
		cache:           deps.Cache,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
