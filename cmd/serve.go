package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/auth"
	"github.com/abhisek/mockinterview/internal/clock"
	"github.com/abhisek/mockinterview/internal/httpapi"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MOCKINTERVIEW_LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ListenAddr = addr
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	verifier, err := auth.NewVerifier(cfg.AuthSettings())
	if err != nil {
		return fmt.Errorf("configure authentication: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cs, err := buildContent(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		return err
	}

	sessions := interview.NewStore()
	engine := interview.NewEngine(sessions, cs.provider,
		interview.WithLogger(log),
		interview.WithEventRecorder(st.InterviewRecorder()),
		interview.WithProviderTimeout(cfg.Interview.ProviderTimeout),
	)

	reaper := &interview.Reaper{
		Store:     sessions,
		Clock:     clock.System{},
		Retention: cfg.Interview.Retention,
		Interval:  cfg.Interview.ReapInterval,
		Log:       log,
	}
	go reaper.Run(ctx)

	opts := []httpapi.Option{httpapi.WithLogger(log)}
	if cs.resolver != nil {
		opts = append(opts, httpapi.WithResolver(cs.resolver))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.New(engine, verifier, opts...).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
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
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
