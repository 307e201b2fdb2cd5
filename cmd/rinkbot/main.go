// rinkbot watches a subreddit for [[First Last]] mentions and replies with
// the player's stat table.
//
// Usage:
//
//	rinkbot <config.yaml> [subreddit]
//
// The optional second argument overrides the configured subreddit, which is
// handy for pointing a production config at a test sub
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"rinkbot/internal/adapters/reddit"
	"rinkbot/internal/platform/config"
	"rinkbot/internal/platform/logger"
	phttp "rinkbot/internal/platform/net/http"
	"rinkbot/internal/platform/store"
	ledgerdom "rinkbot/internal/services/ledger/domain"
	ledgerrepo "rinkbot/internal/services/ledger/repo"
	ledgersvc "rinkbot/internal/services/ledger/service"
	"rinkbot/internal/services/ops"
	pipesvc "rinkbot/internal/services/pipeline/service"
	resolvesvc "rinkbot/internal/services/resolve/service"
	watchsvc "rinkbot/internal/services/watch/service"
)

// settings is the validated shape of everything the process needs to start
type settings struct {
	Subreddit    string `validate:"required"`
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
	Username     string `validate:"required"`
	Password     string `validate:"required"`
	RedisAddr    string `validate:"omitempty,hostname_port"`
}

func main() {
	if len(os.Args) < 2 {
		os.Stderr.WriteString("usage: rinkbot <config.yaml> [subreddit]\n")
		os.Exit(2)
	}
	if err := config.LoadFile(os.Args[1]); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	l := logger.Get()

	root := config.New()
	redditCfg := root.Prefix("REDDIT_")
	botCfg := root.Prefix("BOT_")
	rdsCfg := root.Prefix("REDIS_")
	opsCfg := root.Prefix("OPS_")

	s := settings{
		Subreddit:    redditCfg.MayString("SUBREDDIT", ""),
		ClientID:     redditCfg.MayString("CLIENT_ID", ""),
		ClientSecret: redditCfg.MayString("CLIENT_SECRET", ""),
		Username:     redditCfg.MayString("USERNAME", ""),
		Password:     redditCfg.MayString("PASSWORD", ""),
		RedisAddr:    rdsCfg.MayString("ADDR", ""),
	}
	if len(os.Args) > 2 {
		s.Subreddit = os.Args[2]
	}
	if err := validator.New().Struct(s); err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "rinkbot",
		RDS: store.RedisConfig{
			Enabled:  s.RedisAddr != "",
			Addr:     s.RedisAddr,
			DB:       rdsCfg.MayInt("DB", 0),
			Password: rdsCfg.MayString("PASSWORD", ""),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// redis when configured, process-local otherwise. memory mode still
	// enforces the caps but forgets everything on restart
	var ledgerStore ledgerdom.StorePort
	if s.RedisAddr != "" {
		ledgerStore = ledgerrepo.NewRedis(st.KV)
	} else {
		l.Warn().Msg("no redis configured, decision ledger is in-memory")
		ledgerStore = ledgerrepo.NewMemory()
	}
	ledger := ledgersvc.New(ledgerStore, ledgersvc.Config{
		ThreadCap:    botCfg.MayInt("THREAD_CAP", 25),
		AuthorCap:    botCfg.MayInt("AUTHOR_CAP", 5),
		AllowAuthors: botCfg.MayCSV("ALLOW_AUTHORS", nil),
	})

	// the one timeout in the system, shared by both provider clients
	providerClient := &http.Client{Timeout: botCfg.MayDuration("HTTP_TIMEOUT", 10*time.Second)}
	providers := resolvesvc.New(providerClient, resolvesvc.Config{
		SuggestBase: botCfg.MayString("SUGGEST_BASE", ""),
		StatsBase:   botCfg.MayString("STATS_BASE", ""),
	})

	rc := reddit.New(reddit.Options{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		Username:     s.Username,
		Password:     s.Password,
		UserAgent:    redditCfg.MayString("USER_AGENT", ""),
		Subreddit:    s.Subreddit,
	})

	runner := pipesvc.New(ledger, providers, providers, rc, pipesvc.Config{
		FooterContact: botCfg.MayString("FOOTER_CONTACT", "/u/pacefalmd"),
	})

	tracker := &pipesvc.Tracker{}
	watcher := watchsvc.New(rc, ledger, runner, tracker, watchsvc.Config{
		QueueSize:    botCfg.MayInt("QUEUE_SIZE", 1024),
		PollInterval: botCfg.MayDuration("POLL_INTERVAL", 0),
		DrainTimeout: botCfg.MayDuration("DRAIN_TIMEOUT", 0),
	})

	srv := phttp.NewServer(opsCfg)
	ops.Mount(srv.Mux(), st, watcher)
	go func() {
		if err := srv.Run(ctx); err != nil {
			l.Error().Err(err).Msg("ops server stopped")
		}
	}()

	l.Info().Str("subreddit", s.Subreddit).Msg("rinkbot running")
	if err := watcher.Run(ctx); err != nil {
		l.Warn().Err(err).Msg("watcher exited dirty")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		l.Error().Err(err).Msg("ops shutdown failed")
	}
	l.Info().Msg("rinkbot stopped")
}
