package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
	"github.com/iupui-soic/dhis2-android-sdk/internal/config"
	"github.com/iupui-soic/dhis2-android-sdk/internal/logger"
	"github.com/iupui-soic/dhis2-android-sdk/internal/store"
	"github.com/iupui-soic/dhis2-android-sdk/internal/sync"
)

// app bundles the wired dependencies every subcommand needs.
type app struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	storages *store.Storages
	service  *sync.Service
}

// newApp loads the configuration, opens and migrates the local store, and
// wires the remote client into a sync service. Close must be called when
// done.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger("dhis2sync")

	client, err := api.NewClient(cfg.Adapter, log)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	service := sync.NewService(sync.DefaultRegistry(), client, storages, log)

	return &app{cfg: cfg, log: log, storages: storages, service: service}, nil
}

func (a *app) Close() error {
	return a.storages.DB.Close()
}
