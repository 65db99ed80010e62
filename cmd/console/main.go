package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"refnet-client/internal/backend"
	"refnet-client/internal/config"
	"refnet-client/internal/dispatch"
	"refnet-client/internal/logger"
	"refnet-client/internal/notify"
	"refnet-client/internal/profile"
	"refnet-client/internal/receipt"
	"refnet-client/internal/session"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	sess, err := session.FromToken(cfg.AccessToken)
	if err != nil {
		logger.L().Warn("no usable access token, starting signed out", zap.Error(err))
	}

	var svc backend.Service = backend.NewREST(cfg.BackendURL, cfg.BackendAPIKey, cfg.AccessToken)

	if cfg.RedisAddr != "" {
		store, err := backend.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			logger.L().Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			svc = backend.NewCached(svc, store)
		}
	}

	// The spy doubles as the status line feed for the UI.
	statusFeed := &notify.Spy{}
	notifiers := notify.Fanout{notify.NewLogger(logger.L()), statusFeed}
	if cfg.AMQPUrl != "" {
		pub, err := notify.DialAMQP(cfg.AMQPUrl)
		if err != nil {
			logger.L().Warn("amqp unavailable, notifications stay local", zap.Error(err))
		} else {
			defer pub.Close()
			notifiers = append(notifiers, pub)
		}
	}

	exporter := receipt.NewExporter(
		receipt.FilePrinter{},
		receipt.LogSharer{},
		notifiers,
	)

	m := newModel(
		profile.New(svc, exporter, notifiers, sess),
		dispatch.New(svc, notifiers),
		statusFeed,
		notifiers,
	)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Println("console exited with error:", err)
		os.Exit(1)
	}
}
