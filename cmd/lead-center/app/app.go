// Package app provides the lead center application.
package app

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"
	"github.com/kart-io/version"

	"github.com/kart-io/lead-center/cmd/lead-center/app/options"
	"github.com/kart-io/lead-center/internal/leadcenter"
	"github.com/kart-io/lead-center/pkg/app"
)

const appDescription = `Lead Center Service

A CRM backend with hierarchical record visibility.

This server provides:
  - Lead management with role-based record visibility
  - User, role and permission management
  - Attendance, warnings and support tickets`

// NewApp creates the lead center application.
func NewApp() *app.App {
	opts := options.NewOptions()

	return app.NewApp(
		app.WithName(leadcenter.Name),
		app.WithShortDescription("The lead center service"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run assembles and runs the service with the given options.
func Run(opts *options.Options) error {
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Infow("starting lead-center", "version", version.Get().GitVersion)

	cfg := &leadcenter.Config{
		HTTPOptions:    opts.HTTP,
		DBOptions:      opts.DB,
		RedisOptions:   opts.Redis,
		JWTOptions:     opts.JWT,
		LegacyBareShow: opts.LegacyBareShow,
	}

	ctx := context.Background()
	server, err := cfg.NewServer(ctx)
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
