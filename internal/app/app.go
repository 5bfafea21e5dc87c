package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "pizocrm/docs"
	"pizocrm/internal/config"
	cronrunner "pizocrm/internal/cron"
	"pizocrm/internal/events"
	"pizocrm/internal/handlers"
	"pizocrm/internal/logger"
	"pizocrm/internal/middleware"
	"pizocrm/internal/pdf"
	"pizocrm/internal/routes"
	"pizocrm/internal/services"
)

func Run() error {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Store.Location)
	if err != nil {
		log.Warn("unknown export timezone, using UTC", zap.String("location", cfg.Store.Location), zap.Error(err))
		loc = time.UTC
	}

	// === Store ===
	openCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	st, err := openStores(openCtx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer st.close()
	leadStore := withLeadTimeout(st.leads, cfg.Store.Timeout)

	// === Events ===
	var publisher services.EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		rp, err := events.DialRabbit(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn("rabbitmq unavailable, lead events disabled", zap.Error(err))
		} else {
			publisher = rp
			defer func() { _ = rp.Close() }()
		}
	}

	notifier := buildNotifier(cfg, log)

	// === Services ===
	clock := services.Clock(time.Now)
	leadService := services.NewLeadService(leadStore, publisher, log.Named("leads"), clock)
	pipelineService := services.NewPipelineService(leadStore, publisher, log.Named("pipeline"), clock)
	dormancyService := services.NewDormancyService(leadStore, publisher, notifier, log.Named("dormancy"), clock)
	promoterService := services.NewPromoterService(st.promoters, leadStore, log.Named("promoters"), clock)

	// === Cron ===
	runner := cronrunner.New(log.Named("cron"), ctx)
	if cfg.Cron.Enabled {
		if _, err := runner.Add("wake_expired", cfg.Cron.WakeExpired, services.WakeJob(dormancyService, cfg.Store.Timeout)); err != nil {
			return fmt.Errorf("schedule wake job: %w", err)
		}
		runner.Start()
		defer runner.Stop()
	}

	// === HTTP ===
	if cfg.Server.Mode == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(log.Named("http")))
	router.Use(corsMiddleware())

	routes.SetupRoutes(router, routes.Handlers{
		Lead:     handlers.NewLeadHandler(leadService, pipelineService, dormancyService, log),
		Report:   handlers.NewReportHandler(leadService, pipelineService, services.NewCSVExporter(loc), pdf.NewReportGenerator(cfg.Reports.FontPath), log),
		Policy:   handlers.NewPolicyHandler(cfg.Policy.DefaultDiscount, log),
		Promoter: handlers.NewPromoterHandler(promoterService, log),
		Health:   handlers.NewHealthHandler(st.pinger),
	}, []byte(cfg.Auth.JWTSecret))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildNotifier wires email and telegram when configured. A failing channel
// is logged and skipped.
func buildNotifier(cfg *config.Config, log *zap.Logger) services.Notifier {
	var out services.MultiNotifier
	if cfg.Email.SMTPHost != "" {
		out = append(out, services.NewEmailNotifier(cfg.Email))
	}
	if cfg.Telegram.BotToken != "" && len(cfg.Telegram.ChatIDs) > 0 {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatIDs)
		if err != nil {
			log.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			out = append(out, tg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
