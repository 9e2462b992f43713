package main

import (
	"context"
	"dijital-backend/internal/config"
	"dijital-backend/pkg/log"
	"dijital-backend/pkg/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// LOG_* settings may come from .env, so it is read before the logger exists.
	envErr := godotenv.Load()

	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded: %v", envErr)
	}

	env := config.LoadEnv()
	if os.Getenv("JWT_SECRET") == "" {
		logger.Warn("JWT_SECRET is not set; using a random secret, admin tokens will not survive a restart")
	}

	fiberApp := config.NewFiber(logger, env)
	validator := config.NewValidator()
	smtpMailer := smtp.New(smtp.Options{
		Host:     env.SMTPHost,
		Port:     env.SMTPPort,
		Mail:     env.SMTPMail,
		Password: env.SMTPPassword,
	})

	server, err := config.NewServer(
		config.WithEnv(env),
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithRedisServer(),
		config.WithBlogStore(),
		config.WithSMTPMailer(smtpMailer),
		config.WithAdminCredential(),
		config.WithJWT(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.VerifyMailer(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
