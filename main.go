package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/vending-server/api"
	"github.com/carson-networks/vending-server/internal/config"
	"github.com/carson-networks/vending-server/internal/logging"
	"github.com/carson-networks/vending-server/internal/operator"
	"github.com/carson-networks/vending-server/internal/service"
	"github.com/carson-networks/vending-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()

	app := &cli.App{
		Name:  "vending-server",
		Usage: "vending machine catalog, purchase and history API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "optional YAML config file",
				EnvVars: []string{config.ConfigFileEnv},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API and the operator workers",
				Action: func(c *cli.Context) error {
					return serve(c, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Action: func(c *cli.Context) error {
					return migrate(c, logger)
				},
			},
			{
				Name:  "seed",
				Usage: "replace the catalog and history with the starter data",
				Action: func(c *cli.Context) error {
					return seed(c, logger)
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("vending-server")
	}
}

type deps struct {
	cfg       *config.Config
	storage   *storage.Storage
	delegator *operator.OperatorDelegator
	service   *service.Service
}

func setup(c *cli.Context, logger *logrus.Logger) (*deps, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.LogLevel())

	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}

	dbStorage, err := storage.NewStorage(cfg)
	if err != nil {
		return nil, err
	}

	delegator := operator.NewOperatorDelegator(dbStorage, cfg.Operator.Workers, logger)
	svc := service.NewService(dbStorage, delegator, formatter, service.PurchaseOptions{
		AttemptTTL: cfg.Attempt.TTL,
	}, logger)

	return &deps{cfg: cfg, storage: dbStorage, delegator: delegator, service: svc}, nil
}

func serve(c *cli.Context, logger *logrus.Logger) error {
	logger.Info("vending-server starting")

	a, err := setup(c, logger)
	if err != nil {
		return err
	}
	defer a.storage.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.delegator.Start()
	defer a.delegator.Stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     a.cfg.HTTP.Port,
		Database: a.storage,
		Service:  a.service,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpRest.Serve(gctx)
	})
	return g.Wait()
}

func migrate(c *cli.Context, logger *logrus.Logger) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	dbStorage, err := storage.NewStorage(cfg)
	if err != nil {
		return err
	}
	defer dbStorage.Close()

	pre, post, err := storage.Migrate(dbStorage.SQLDB())
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  pre,
		"postMigrationVersion": post,
	}).Info("Migration status")
	return nil
}

func seed(c *cli.Context, logger *logrus.Logger) error {
	a, err := setup(c, logger)
	if err != nil {
		return err
	}
	defer a.storage.Close()

	a.delegator.Start()
	defer a.delegator.Stop()

	result, err := a.service.Catalog.SeedCatalog(c.Context)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"products":     len(result.Products),
		"transactions": result.Transactions,
	}).Info("Seed complete")
	return nil
}
