package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"daily-tasks/internal/config"
	"daily-tasks/internal/guidance"
	"daily-tasks/internal/logger"
	"daily-tasks/internal/notify"
	"daily-tasks/internal/repository"
	"daily-tasks/internal/service"
)

// app holds everything a command needs.
type app struct {
	cfg       config.Config
	logger    *log.Logger
	store     *repository.Store
	users     *service.UserService
	tasks     *service.TaskService
	reminders *service.ReminderService
	closers   []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	appLogger, logCloser, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a := &app{cfg: cfg, logger: appLogger, closers: []io.Closer{logCloser}}

	db, err := repository.NewDB(cfg.DatabaseURL, appLogger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append([]io.Closer{sqlDB}, a.closers...)
	}

	client := guidance.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	advisor := guidance.NewAdvisor(client, cfg.OpenAITimeout, appLogger)

	a.store = repository.NewStore(db)
	a.users = service.NewUserService(a.store.Users, cfg.DefaultUserEmail, cfg.DefaultUserName)
	a.tasks = service.NewTaskService(a.store, advisor, appLogger, a.now)
	a.reminders = service.NewReminderService(a.store.Tasks)
	return a, nil
}

// now reads the wall clock in the configured time zone.
func (a *app) now() time.Time {
	return time.Now().In(a.cfg.Location())
}

func (a *app) notifier() (service.Notifier, error) {
	if a.cfg.TelegramToken == "" {
		return notify.NewLog(a.logger), nil
	}
	tg, err := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID, a.logger)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return tg, nil
}

func (a *app) rolloverJob() (*service.RolloverJob, error) {
	notifier, err := a.notifier()
	if err != nil {
		return nil, err
	}
	return service.NewRolloverJob(a.users, a.tasks, a.reminders, notifier, a.logger, a.now), nil
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
