package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"festa-pos/config"
	"festa-pos/controllers"
	"festa-pos/events"
	"festa-pos/live"
	"festa-pos/middlewares"
	"festa-pos/routes"
	"festa-pos/seeders"
	"festa-pos/services"
	"festa-pos/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const hubBuffer = 32

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogger("info")
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	config.SetupLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect db
	db, err := config.ConnectDatabase(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if cfg.Seed {
		if err := seeders.Seed(db); err != nil {
			return err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	hours := services.BusinessHours{
		Open:       cfg.OpenHour,
		Close:      cfg.CloseHour,
		BypassFrom: cfg.BypassFrom,
		BypassTo:   cfg.BypassTo,
		Location:   loc,
	}

	hub := live.NewHub(hubBuffer)
	defer hub.Close()

	var notifier services.Notifier
	if cfg.ReportWebhookURL != "" {
		notifier = utils.NewWebhookNotifier(cfg.ReportWebhookURL, cfg.ReportWebhookToken)
	}

	orderService := services.NewOrderService(db, hub, hours, time.Now)
	ctl := routes.Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, time.Now)),
		Products:    controllers.NewProductController(services.NewProductService(db)),
		Orders:      controllers.NewOrderController(orderService, hub),
		Kitchen:     controllers.NewKitchenController(services.NewKitchenService(db, time.Now), hub),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(db, hours, notifier, time.Now), hub),
		Memos:       controllers.NewMemoController(services.NewMemoService(db, hub, time.Now), hub),
		CashSession: controllers.NewCashSessionController(services.NewCashSessionService(db, time.Now)),
	}

	r := gin.New()
	r.Use(middlewares.RequestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.RegisterRoutes(r, ctl, cfg.JWTSecret)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var mq *events.RabbitMQ
	if cfg.RabbitMQURL != "" {
		mq, err = events.ConnectRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return err
		}
		defer mq.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	if mq != nil {
		g.Go(func() error {
			return events.Forward(gctx, hub, mq)
		})
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// streams hold connections open until their subscriptions end
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
