package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"quotation-backend/config"
	apiv1 "quotation-backend/controllers/v1"
	_ "quotation-backend/docs"
	"quotation-backend/fiberlog"
	"quotation-backend/initializers"
	"quotation-backend/lib/ws"
	"quotation-backend/middleware"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

// запас на multipart заголовки поверх максимального размера pdf
const multipartOverhead = 1024 * 1024

// @title quotation-backend
// @version 1.0
// @description API котировок
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	bodyLimit := config.Conf.Workflow.PdfMaxSizeBytes + multipartOverhead
	app := fiber.New(fiber.Config{
		BodyLimit: int(bodyLimit),
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(middleware.ErrNotify(config.Conf.NotifyBot.AddrErrors))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//ws
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(bodyLimit))

	// без авторизации
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitProductPublicRouters(apiV1)
	apiv1.InitCategoryPublicRouters(apiV1)

	// с авторизацией, доступ по таблице rbac
	apiV1.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
	apiv1.InitQuotationApiRouters(apiV1)
	apiv1.InitProductApiRouters(apiV1)
	apiv1.InitCategoryApiRouters(apiV1)
	apiv1.InitUserApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
