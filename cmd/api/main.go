package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/imobiliariaxyz/bot-corretor/internal/api/router"
	"github.com/imobiliariaxyz/bot-corretor/internal/catalog"
	appconfig "github.com/imobiliariaxyz/bot-corretor/internal/config"
	"github.com/imobiliariaxyz/bot-corretor/internal/conversation"
	"github.com/imobiliariaxyz/bot-corretor/internal/gateway/evolution"
	"github.com/imobiliariaxyz/bot-corretor/internal/messaging"
	"github.com/imobiliariaxyz/bot-corretor/internal/nlu"
	"github.com/imobiliariaxyz/bot-corretor/internal/observability/metrics"
	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

func main() {
	// Load .env in development; ignored when absent
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting bot-corretor API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"instance", cfg.InstanceName,
	)

	gateway, err := evolution.New(evolution.Config{
		BaseURL:       cfg.EvolutionAPIURL,
		APIKey:        cfg.EvolutionAPIKey,
		Instance:      cfg.InstanceName,
		Timeout:       cfg.GatewayTimeout,
		MaxMediaBytes: int64(cfg.MaxAudioMegabyte) << 20,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create gateway client", "error", err)
		os.Exit(1)
	}

	adapter := buildNLU(cfg, logger)
	botMetrics := metrics.NewBotMetrics(nil)

	composer := messaging.NewComposer(messaging.ComposerConfig{
		Gateway: gateway,
		Delay:   cfg.ReplyDelay,
		Logger:  logger,
		Metrics: botMetrics,
	})

	engine := conversation.NewEngine(conversation.EngineConfig{
		Sessions:   conversation.NewSessionStore(),
		Profiles:   conversation.NewProfileStore(),
		Catalog:    catalog.Default(),
		NLU:        adapter,
		Dispatcher: composer,
		Logger:     logger,
		Metrics:    botMetrics,
	})

	normalizer := messaging.NewNormalizer(messaging.NormalizerConfig{
		Media:         gateway,
		MaxAudioBytes: int64(cfg.MaxAudioMegabyte) << 20,
		Logger:        logger,
		Metrics:       botMetrics,
	})

	webhookHandler := messaging.NewWebhookHandler(messaging.WebhookHandlerConfig{
		Normalizer: normalizer,
		Engine:     engine,
		Instance:   cfg.InstanceName,
		Logger:     logger,
		Metrics:    botMetrics,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		WebhookHandler: webhookHandler,
		MetricsHandler: promhttp.Handler(),
		Instance:       gateway,
	})

	bootstrapInstance(cfg, gateway, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildNLU assembles the understanding chain: OpenAI primary, Gemini
// fallback, disabled when no key is configured. The bot stays fully
// functional on menu navigation either way.
func buildNLU(cfg *appconfig.Config, logger *logging.Logger) nlu.Adapter {
	var primary nlu.Adapter
	if cfg.OpenAIAPIKey != "" {
		primary = nlu.NewOpenAIAdapter(openai.NewClient(cfg.OpenAIAPIKey), nlu.OpenAIConfig{
			ChatModel:         cfg.OpenAIChatModel,
			AudioModel:        cfg.OpenAIAudioModel,
			ChatTimeout:       cfg.ChatTimeout,
			TranscribeTimeout: cfg.TranscribeTimeout,
		}, logger)
	}

	var fallback nlu.Adapter
	if cfg.GeminiAPIKey != "" {
		gemini, err := nlu.NewGeminiAdapter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini adapter unavailable", "error", err.Error())
		} else {
			fallback = gemini
		}
	}

	switch {
	case primary != nil:
		return nlu.NewFallbackAdapter(primary, fallback, logger)
	case fallback != nil:
		logger.Info("using gemini as the only intent provider, transcription disabled")
		return fallback
	default:
		logger.Info("no NLU provider configured, menu navigation only")
		return nlu.Disabled{}
	}
}

// bootstrapInstance points the gateway instance at this server. Best
// effort: a gateway that is down at boot only disables inbound traffic
// until it recovers, the admin routes can re-pair later.
func bootstrapInstance(cfg *appconfig.Config, gateway *evolution.Client, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	state, err := gateway.ConnectionStatus(ctx)
	if err != nil {
		if evolution.IsRejected(err) {
			logger.Info("instance not found on gateway, creating", "instance", cfg.InstanceName)
			if err := gateway.CreateInstance(ctx); err != nil {
				logger.Warn("failed to create instance", "error", err.Error())
				return
			}
		} else {
			logger.Warn("gateway unreachable during bootstrap", "error", err.Error())
			return
		}
	} else {
		logger.Info("instance state", "state", state.Instance.State)
	}

	if cfg.WebhookURL != "" {
		if err := gateway.SetWebhook(ctx, cfg.WebhookURL, nil); err != nil {
			logger.Warn("failed to set webhook", "error", err.Error())
		} else {
			logger.Info("webhook configured", "url", cfg.WebhookURL)
		}
	}

	resp, err := gateway.Connect(ctx)
	if err != nil {
		logger.Warn("failed to connect instance", "error", err.Error())
		return
	}
	if resp.Code != "" || resp.Base64 != "" {
		logger.Info("instance requires pairing, fetch the code at GET /instance/qrcode")
	}
}
