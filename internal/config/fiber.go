package config

import (
	"dijital-backend/pkg/handlerUtil"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, env Env) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:               env.SiteName + " Backend",
			BodyLimit:             1 * 1024 * 1024,
			DisableKeepalive:      false,
			StrictRouting:         false,
			CaseSensitive:         true,
			EnablePrintRoutes:     env.AppEnv == "development",
			DisableStartupMessage: env.AppEnv == "test",
			JSONEncoder:           jsoniter.Marshal,
			JSONDecoder:           jsoniter.Unmarshal,
			ErrorHandler:          handlerUtil.FiberErrorHandler(logger),
		})

	app.Use(recover.New(recover.Config{EnableStackTrace: env.AppEnv != "production"}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(env.CORSOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	return app
}
