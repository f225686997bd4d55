package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"daily-tasks/internal/httpapi"
	"daily-tasks/internal/service"
)

const jobTimeout = 2 * time.Minute

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the daily rollover scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	job, err := a.rolloverJob()
	if err != nil {
		return err
	}

	scheduler := service.NewSchedulerService(a.cfg.Location())
	rolloverID, err := scheduler.ScheduleDaily(a.cfg.RolloverAt, func() {
		runJob(a.logger, "rollover", func(ctx context.Context) error {
			_, err := job.Run(ctx)
			return err
		})
	})
	if err != nil {
		return err
	}
	if a.cfg.ReportInterval > 0 {
		if _, err := scheduler.ScheduleInterval(a.cfg.ReportInterval, func() {
			runJob(a.logger, "report", job.Report)
		}); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()
	a.logger.Info("scheduler started", "rollover_at", a.cfg.RolloverAt, "next", scheduler.Next(rolloverID))

	addr := a.cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := httpapi.NewServer(a.tasks, a.users, a.store, a.logger)
	if err := server.Run(ctx, addr); err != nil {
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}

func runJob(logger *log.Logger, name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("job failed", "job", name, "err", err)
	}
}
