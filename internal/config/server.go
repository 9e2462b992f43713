package config

import (
	"context"
	"dijital-backend/database/postgres"
	adminHandler "dijital-backend/internal/api/admin/handler"
	adminService "dijital-backend/internal/api/admin/service"
	blogHandler "dijital-backend/internal/api/blog/handler"
	blogRepository "dijital-backend/internal/api/blog/repository"
	blogService "dijital-backend/internal/api/blog/service"
	contactHandler "dijital-backend/internal/api/contact/handler"
	contactService "dijital-backend/internal/api/contact/service"
	"dijital-backend/internal/middleware"
	"dijital-backend/pkg/credential"
	jwtPkg "dijital-backend/pkg/jwt"
	"dijital-backend/pkg/redis"
	"dijital-backend/pkg/response"
	"dijital-backend/pkg/smtp"
	"dijital-backend/pkg/utils"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	env         Env
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	blogRepo    blogRepository.Repository
	credential  credential.ICredential
	signer      jwtPkg.ItfJWT
	mounted     bool
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.blogRepo == nil {
		return nil, fmt.Errorf("blog repository is required")
	}
	if server.smtpMailer == nil {
		return nil, fmt.Errorf("smtp mailer is required")
	}
	if server.credential == nil {
		return nil, fmt.Errorf("admin credential is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.signer == nil {
		server.signer = jwtPkg.New(server.env.JWTSecret, server.env.JWTTTL)
	}
	if server.middleware == nil {
		server.middleware = server.newMiddleware()
	}

	return server, nil
}

func WithEnv(env Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

// WithRedisServer connects to redis when an address is configured; without
// one the rate limiters stay in memory.
func WithRedisServer() ServerOption {
	return func(s *Server) error {
		if s.env.RedisAddress == "" {
			return nil
		}
		s.redisServer = redis.New(redis.Options{
			Address:  s.env.RedisAddress,
			Password: s.env.RedisPassword,
			DB:       s.env.RedisDB,
		})
		return nil
	}
}

// WithBlogStore opens the backend selected by BLOG_STORE.
func WithBlogStore() ServerOption {
	return func(s *Server) error {
		switch s.env.BlogStore {
		case "", "file":
			repo, err := blogRepository.NewFile(s.env.BlogDataFile, s.log)
			if err != nil {
				return fmt.Errorf("failed to open blog data file: %w", err)
			}
			s.blogRepo = repo

		case "postgres":
			db, err := postgres.New(s.env.DatabaseURL)
			if err != nil {
				if s.log != nil {
					s.log.Errorf("Failed to connect to database: %v", err)
				}
				return fmt.Errorf("failed to create database connection: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			repo, err := blogRepository.NewPostgres(ctx, db, s.log)
			if err != nil {
				_ = db.Close()
				return err
			}
			s.db = db
			s.blogRepo = repo

		default:
			return fmt.Errorf("unknown BLOG_STORE %q", s.env.BlogStore)
		}
		return nil
	}
}

func WithBlogRepository(repo blogRepository.Repository) ServerOption {
	return func(s *Server) error {
		s.blogRepo = repo
		return nil
	}
}

func WithCredential(cred credential.ICredential) ServerOption {
	return func(s *Server) error {
		s.credential = cred
		return nil
	}
}

func WithAdminCredential() ServerOption {
	return func(s *Server) error {
		cred, err := credential.New(s.env.AdminUsername, s.env.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		s.credential = cred
		return nil
	}
}

func WithMiddleware(m middleware.Middleware) ServerOption {
	return func(s *Server) error {
		s.middleware = m
		return nil
	}
}

func WithJWT() ServerOption {
	return func(s *Server) error {
		s.signer = jwtPkg.New(s.env.JWTSecret, s.env.JWTTTL)
		return nil
	}
}

func (s *Server) newMiddleware() middleware.Middleware {
	return middleware.New(s.log, middleware.Options{
		Credential:   s.credential,
		Signer:       s.signer,
		ContactLimit: s.newLimiter("ratelimit:contact", s.env.ContactRateLimit, s.env.ContactRateWindow),
		LoginLimit:   s.newLimiter("ratelimit:login", s.env.LoginRateLimit, s.env.LoginRateWindow),
	})
}

func (s *Server) newLimiter(prefix string, max int, window time.Duration) middleware.LimiterStore {
	if max <= 0 || window <= 0 {
		return nil
	}
	if s.redisServer != nil {
		return middleware.NewRedisLimiter(s.redisServer, prefix, max, window)
	}
	return middleware.NewMemoryLimiter(max, window)
}

func (s *Server) RegisterHandler() {
	// Contact Domain
	mailerService := contactService.NewContactService(s.log, s.smtpMailer, contactService.Options{
		SiteName:  s.env.SiteName,
		Sender:    s.env.SMTPMail,
		Recipient: s.env.RecipientEmail,
		Location:  s.env.Timezone,
	})
	contactHandlers := contactHandler.New(s.log, s.validator, s.middleware, mailerService)

	// Blog Domain
	blogServices := blogService.NewBlogsService(s.log, s.blogRepo, s.utils, blogService.Defaults{
		Image:    s.env.BlogDefaultImage,
		Location: s.env.Timezone,
	})
	blogHandlers := blogHandler.New(s.log, s.validator, s.middleware, blogServices)

	// Admin Domain
	adminServices := adminService.NewAdminService(s.log, s.credential, s.signer)
	adminHandlers := adminHandler.New(s.log, s.validator, s.middleware, adminServices)

	s.handlers = append(s.handlers, contactHandlers, adminHandlers, blogHandlers)
}

// Mount wires middleware, routes and the 404 fallback onto the fiber app.
func (s *Server) Mount() *fiber.App {
	if s.mounted {
		return s.engine
	}
	s.mounted = true

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api")
	s.setupHealthCheck(router)

	for _, h := range s.handlers {
		h.Start(router)
	}

	s.engine.Use(func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(response.Failure("Endpoint bulunamadı"))
	})

	return s.engine
}

func (s *Server) Run() error {
	s.Mount()

	s.log.WithFields(logrus.Fields{
		"port":        s.env.AppPort,
		"environment": s.env.AppEnv,
		"recipient":   s.env.RecipientEmail,
		"blog_store":  s.env.BlogStore,
	}).Infof("%s Backend Server starting", s.env.SiteName)

	return s.engine.Listen(fmt.Sprintf(":%s", s.env.AppPort))
}

// VerifyMailer checks the SMTP login once; failures are only logged.
func (s *Server) VerifyMailer(ctx context.Context) {
	if err := s.smtpMailer.Verify(ctx); err != nil {
		s.log.WithField("error", err.Error()).Error("Email configuration error")
		return
	}
	s.log.Info("Email service ready")
}

func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	if s.redisServer != nil {
		if redisErr := s.redisServer.Close(); redisErr != nil && err == nil {
			err = redisErr
		}
	}

	return err
}

func (s *Server) setupHealthCheck(router fiber.Router) {
	router.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":    "OK",
			"message":   s.env.SiteName + " Backend çalışıyor!",
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		})
	})
}
