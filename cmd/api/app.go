package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/config"
	"github.com/xavierca1/leadpilot/internal/infra/events"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/infra/integration/gemini"
	"github.com/xavierca1/leadpilot/internal/infra/mail"
	"github.com/xavierca1/leadpilot/internal/infra/queue"
	"github.com/xavierca1/leadpilot/internal/store"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

// app is the object graph the server runs on.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	gateway   *gemini.Client
	store     *store.Store
	dashboard *usecase.Dashboard
	hub       *events.Hub
	rabbitMQ  *queue.RabbitMQ
}

// newGateway builds the Gemini client with call metrics attached.
func newGateway(ctx context.Context, cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(ctx, gemini.Options{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
		OnCall: func(kind string, err error, elapsed time.Duration) {
			middleware.RecordGatewayCall(kind, err, elapsed)
			if err != nil {
				middleware.RecordIntegrationError("gemini")
			}
		},
	})
}

func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	// 1. Gateway
	gateway, err := newGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 2. Event fan-out: UI streams always, broker when configured
	hub := events.NewHub()
	publishers := usecase.Publishers{hub}

	var rabbitMQ *queue.RabbitMQ
	if cfg.Queue.Enabled() {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, queue.NewProducer(rabbitMQ.Ch))
		log.Info("rabbitmq connected", zap.String("exchange", queue.ExchangeName))
	}

	// 3. Optional SMTP
	var mailer usecase.ContentMailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
	}

	// 4. Services and dashboard
	st := store.New()
	st.Subscribe(func(a store.Action, _ store.State) {
		if created, ok := a.(store.ContentCreated); ok && created.Content.Degraded {
			middleware.RecordDegradedContent()
		}
	})

	dashboard := usecase.NewDashboard(
		st,
		usecase.NewLeadSourcingService(gateway, cfg.Gemini.TextModel, log.Named("leads")),
		usecase.NewContentGenerationService(gateway, cfg.Gemini.TextModel, log.Named("content")),
		usecase.NewImageGenerationService(gateway, cfg.Gemini.ImageModel, log.Named("image")),
		publishers,
		mailer,
		usecase.DashboardSettings{
			LeadBatchSize:   cfg.Dashboard.LeadBatchSize,
			DailyLeadTarget: cfg.Dashboard.DailyLeadTarget,
		},
		log.Named("dashboard"),
	)

	return &app{
		cfg:       cfg,
		log:       log,
		gateway:   gateway,
		store:     st,
		dashboard: dashboard,
		hub:       hub,
		rabbitMQ:  rabbitMQ,
	}, nil
}

func (a *app) close() {
	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(); err != nil {
			a.log.Warn("close rabbitmq", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// startWorker consumes content.created in the background when auto images
// are enabled.
func (a *app) startWorker(ctx context.Context) {
	if a.rabbitMQ == nil || !a.cfg.Queue.AutoImage {
		return
	}
	worker := queue.NewWorker(a.rabbitMQ.Ch, a.dashboard, a.log.Named("worker"))
	go func() {
		if err := worker.Start(ctx, queue.ContentCreatedQueue); err != nil {
			a.log.Error("worker stopped", zap.Error(err))
		}
	}()
}

func describeStartup(cfg *config.Config) []zap.Field {
	return []zap.Field{
		zap.String("addr", cfg.Server.Addr),
		zap.String("text_model", cfg.Gemini.TextModel),
		zap.String("image_model", cfg.Gemini.ImageModel),
		zap.Bool("rabbitmq", cfg.Queue.Enabled()),
		zap.Bool("auto_image", cfg.Queue.AutoImage),
		zap.Bool("smtp", cfg.Mail.Enabled()),
		zap.Duration("gateway_timeout", cfg.Gemini.Timeout),
	}
}
