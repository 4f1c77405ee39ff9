package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadhub/leadhub/internal/auth"
	authdomain "github.com/leadhub/leadhub/internal/auth/domain"
	"github.com/leadhub/leadhub/internal/auth/session"
	"github.com/leadhub/leadhub/internal/config"
	"github.com/leadhub/leadhub/internal/lead"
	leaddomain "github.com/leadhub/leadhub/internal/lead/domain"
	obslogger "github.com/leadhub/leadhub/internal/observability/logger"
	obsmetrics "github.com/leadhub/leadhub/internal/observability/metrics"
	"github.com/leadhub/leadhub/internal/organization"
	organizationdomain "github.com/leadhub/leadhub/internal/organization/domain"
	"github.com/leadhub/leadhub/internal/user"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(NewEngine),
	auth.Module,
	user.Module,
	lead.Module,
	organization.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	log             *zap.Logger
	sessions        *session.Manager
	authsvc         authdomain.Service
	usersvc         userdomain.Service
	leadsvc         leaddomain.Service
	organizationsvc organizationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	Log             *zap.Logger
	Sessions        *session.Manager
	Authsvc         authdomain.Service
	Usersvc         userdomain.Service
	Leadsvc         leaddomain.Service
	Organizationsvc organizationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("http.server"),
		sessions:        p.Sessions,
		authsvc:         p.Authsvc,
		usersvc:         p.Usersvc,
		leadsvc:         p.Leadsvc,
		organizationsvc: p.Organizationsvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.PATCH("/users/:id/permissions", s.UpdateUserPermissions)
	api.DELETE("/users/:id", s.DeactivateUser)

	// -------- Leads --------
	api.GET("/leads", s.ListLeads)
	api.POST("/leads", s.CreateLead)
	api.GET("/leads/:id", s.GetLeadByID)
	api.PUT("/leads/:id", s.UpdateLead)
	api.DELETE("/leads/:id", s.DeleteLead)
	api.POST("/leads/:id/assign", s.AssignLead)

	// -------- Analytics --------
	api.GET("/analytics", s.GetAnalytics)

	// -------- Organization --------
	api.GET("/organization", s.GetOrganization)
	api.PATCH("/organization/settings", s.UpdateOrganizationSettings)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
