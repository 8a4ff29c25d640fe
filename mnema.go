package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Fesaa/mnema/internal/config"
	coreContent "github.com/Fesaa/mnema/internal/content"
	"github.com/Fesaa/mnema/internal/db"
	"github.com/Fesaa/mnema/internal/downloads"
	"github.com/Fesaa/mnema/internal/lock"
	"github.com/Fesaa/mnema/internal/migration"
	"github.com/Fesaa/mnema/internal/model"
	"github.com/Fesaa/mnema/internal/notifier"
	"github.com/Fesaa/mnema/internal/provider"
	"github.com/Fesaa/mnema/internal/schedule"
	contentservice "github.com/Fesaa/mnema/internal/service/content"
	"github.com/Fesaa/mnema/internal/service/tracking"
	"github.com/Fesaa/mnema/internal/storage"
	"github.com/Fesaa/mnema/internal/watcher"
	"github.com/Fesaa/mnema/pkg/relsearch"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4"
	"go-micro.dev/v4/logger"

	// Plugins
	_ "github.com/go-micro/plugins/v4/registry/etcd"
)

var Version = "v0.0.0"

const serviceName = "mnema"

func main() {
	logger.Infof("%s %s", serviceName, Version)
	defer logger.Info("DONE.")

	useDebug := false

	service := micro.NewService(
		micro.Name(serviceName),
		micro.Version(Version),
		micro.Flags(
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"debug"},
				Usage:       "debug log level",
				Value:       false,
				Destination: &useDebug,
			},
		),
	)

	service.Init(
		micro.Action(func(context *cli.Context) error {
			configFile := fmt.Sprintf("/etc/mnema/%s.json", serviceName)
			if context.IsSet("config") {
				configFile = context.String("config")
			}
			return config.Load(configFile)
		}),
	)

	if useDebug {
		_ = logger.Init(logger.WithLevel(logger.DebugLevel))
	}

	cfg := config.Config()

	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatalf("Connect to database failed: %s", err)
	}
	logger.Info("Connected to database")

	m := migration.Migrator{
		CurrentVersion: Version,
		Database:       database,
	}
	if err = m.Run(); err != nil {
		logger.Fatalf("Migration failed: %s", err)
	}

	dirManager, err := storage.NewManager(cfg.Directories)
	if err != nil {
		logger.Fatalf("Cannot initialize directory manager: %s", err)
	}

	publisher := notifier.NewPublisher(service)

	// provider clients are constructed and registered here; the registry is
	// the only place the rest of the service resolves them from
	registry := provider.NewRegistry()
	logger.Infof("%d providers registered", len(registry.Providers()))

	dispatcher := coreContent.NewDispatcher()
	for _, p := range registry.Providers() {
		client, _ := registry.Get(p)
		manager := coreContent.NewManager(p, client, dirManager, publisher, cfg.Watcher.MaxConcurrentDownloads)
		dispatcher.Register(p, manager)
	}

	downloadService := &downloads.Service{
		Dispatcher: dispatcher,
		Database:   database,
	}

	source := relsearch.Source{Engine: relsearch.NewRegistryEngine(registry)}

	subWatcher := &watcher.Watcher[*model.Subscription]{
		Name:    "subscriptions",
		Load:    database.GetActiveSubscriptions,
		Source:  source,
		Dedup:   database,
		Matcher: &watcher.SubscriptionMatcher{Trigger: downloadService},
	}

	seriesWatcher := &watcher.Watcher[*model.MonitoredSeries]{
		Name:   "series",
		Load:   database.GetMonitoredSeries,
		Source: source,
		Dedup:  database,
		Matcher: &watcher.SeriesMatcher{
			Trigger: downloadService,
			Titles:  watcher.NewTitleParser(registry),
		},
	}

	sched := schedule.New()
	defer sched.Stop()

	startWatcher(sched, "watch:subscriptions", cfg.Watcher.SubscriptionInterval(), subWatcher.RunWatcher)
	startWatcher(sched, "watch:series", cfg.Watcher.SeriesInterval(), seriesWatcher.RunWatcher)

	lk := lock.NewLocker()

	contentSvc := &contentservice.Content{
		Locker:     lk,
		Dispatcher: dispatcher,
		Notifier:   publisher,
	}
	trackingSvc := &tracking.Tracking{
		Database: database,
	}

	if err = micro.RegisterHandler(service.Server(), contentSvc); err != nil {
		logger.Fatalf("Register content service failed: %s", err)
	}
	if err = micro.RegisterHandler(service.Server(), trackingSvc); err != nil {
		logger.Fatalf("Register tracking service failed: %s", err)
	}

	if err = service.Run(); err != nil {
		logger.Fatalf("Run service failed: %s", err)
	}
}

func startWatcher(sched *schedule.Scheduler, group string, interval time.Duration, run func(ctx context.Context) error) {
	task := schedule.Task{
		Group: group,
		Fn: schedule.GetPeriodicWrapper(
			logger.Fields(map[string]interface{}{"op": group}),
			interval,
			func(log logger.Logger, ctx context.Context) error {
				return run(ctx)
			},
		),
	}
	task.After(time.Duration(rand.Intn(60)) * time.Second)
	sched.Add(&task)
}
