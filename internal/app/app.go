// Package app assembles the cobra command tree of each service binary and
// wires configuration, stores, use cases and the HTTP server together.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/booking-platform/services/internal/api"
	"github.com/booking-platform/services/internal/core/service"
	"github.com/booking-platform/services/internal/pkg/config"
	"github.com/booking-platform/services/pkg/logger"
)

// serviceDef describes one binary.
type serviceDef struct {
	name  string
	use   string
	short string
	// router builds the service's use cases on top of st and returns its
	// Echo instance.
	router func(st *stores, opts api.Options, log zerolog.Logger) *echo.Echo
}

var reservationDef = serviceDef{
	name:  api.ServiceReservations,
	use:   "reservation-service",
	short: "Reservation service: CRUD plus confirm/cancel over REST",
	router: func(st *stores, opts api.Options, log zerolog.Logger) *echo.Echo {
		svc := service.NewReservationService(st.reservationRepository(), st.idem, log)
		return api.NewReservationRouter(svc, opts)
	},
}

var userDef = serviceDef{
	name:  api.ServiceUsers,
	use:   "user-service",
	short: "User service: CRUD plus activate/deactivate over REST",
	router: func(st *stores, opts api.Options, log zerolog.Logger) *echo.Echo {
		svc := service.NewUserService(st.userRepository(), st.idem, log)
		return api.NewUserRouter(svc, opts)
	},
}

// NewReservationCommand returns the root command of the reservation service.
func NewReservationCommand() *cobra.Command {
	return newRootCommand(reservationDef)
}

// NewUserCommand returns the root command of the user service.
func NewUserCommand() *cobra.Command {
	return newRootCommand(userDef)
}

const (
	envFileFlag = "env-file"
	portFlag    = "port"
)

func newRootCommand(def serviceDef) *cobra.Command {
	root := &cobra.Command{
		Use:          def.use,
		Short:        def.short,
		SilenceUsage: true,
	}
	root.PersistentFlags().String(envFileFlag, ".env", "Path of a .env file to seed the environment from (missing file is ignored)")

	root.AddCommand(newServeCommand(def))
	root.AddCommand(newMigrateCommand(def))
	return root
}

func newServeCommand(def serviceDef) *cobra.Command {
	serveFlags := map[string]cobraflags.Flag{
		portFlag: &cobraflags.StringFlag{
			Name:  portFlag,
			Value: "",
			Usage: "Listen port; overrides PORT when set",
		},
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(cmd, def.name)
			if err != nil {
				return err
			}
			if port := serveFlags[portFlag].GetString(); port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), def, cfg, log)
		},
	}
	cobraflags.RegisterMap(cmd, serveFlags)
	return cmd
}

func newMigrateCommand(def serviceDef) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the service schema (Postgres DDL, MongoDB indexes; no-op for memory)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(cmd, def.name)
			if err != nil {
				return err
			}
			return migrate(cmd.Context(), def, cfg, log)
		},
	}
}

// bootstrap loads the .env file and configuration, then initialises the
// process logger.
func bootstrap(cmd *cobra.Command, service string) (*config.Config, zerolog.Logger, error) {
	envFile, err := cmd.Flags().GetString(envFileFlag)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, zerolog.Logger{}, err
	}

	cfg, err := config.Load(cmd.Context(), service)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: service,
		Env:     cfg.Env,
	})
	return cfg, log, nil
}

func migrate(ctx context.Context, def serviceDef, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, def.name, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	if err := st.migrate(ctx, def.name); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("schema applied")
	return nil
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests within cfg.ShutdownTimeout.
func serve(ctx context.Context, def serviceDef, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, def.name, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing stores")
		}
	}()

	if cfg.AutoMigrate {
		if err := st.migrate(ctx, def.name); err != nil {
			return err
		}
		log.Info().Msg("schema applied")
	}

	e := def.router(st, api.Options{Log: log, Checks: st.checks()}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
