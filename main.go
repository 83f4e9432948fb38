// MenuMate serves dining-hall menus, filtered by a student's allergens and
// ordered by distance, together with each hall's serving status.
//
// Usage:
//
//	menumate serve
//	menumate fetch --date 2024-11-04 --force
//	menumate status --report
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MenuMate/config/database"
	"MenuMate/config/environment"
	v1 "MenuMate/routes/v1"
	"MenuMate/services"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

type app struct {
	logger      *zap.Logger
	acquisition *services.AcquisitionService
	schedule    *services.ScheduleEvaluator
	query       *services.MenuQueryService
}

func main() {
	environment.Load()

	rootCmd := &cobra.Command{
		Use:     "menumate",
		Short:   "Dining hall menus and serving status",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(), fetchCmd(), statusCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func fetchCmd() *cobra.Command {
	var (
		date  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Acquire and store the menus for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if err := utils.ValidateDate(date); err != nil {
					return fmt.Errorf("--date %q: %w", date, err)
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if date == "" {
				date = a.query.Today()
			}
			menus, err := a.acquisition.GetDiningHallInfo(cmd.Context(), date, force)
			if err != nil {
				return err
			}
			a.logger.Info("menus stored", zap.String("date", date), zap.Int("halls", len(menus)))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Menu date (YYYY-MM-DD), defaults to today")
	cmd.Flags().BoolVar(&force, "force", false, "Re-fetch even when the date is cached")
	return cmd
}

func statusCmd() *cobra.Command {
	var report bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print what each hall is serving now",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := loadSchedule(zap.NewNop())
			if err != nil {
				return err
			}
			if report {
				fmt.Fprint(cmd.OutOrStdout(), schedule.Report(time.Now()))
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schedule.CurrentStatus(time.Now()))
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "Print the prose report instead of JSON")
	return cmd
}

func loadSchedule(logger *zap.Logger) (*services.ScheduleEvaluator, error) {
	loc, err := time.LoadLocation(environment.GetTimezone())
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	schedule, err := services.LoadSchedule(environment.GetSchedulePath())
	if err != nil {
		return nil, err
	}
	return services.NewScheduleEvaluator(schedule, loc, logger), nil
}

func newApp() (*app, error) {
	logger, err := utils.NewLogger(environment.GetLogLevel(), environment.GetAppEnv() == "development")
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	schedule, err := loadSchedule(logger.Named("schedule"))
	if err != nil {
		return nil, err
	}

	var fetcher services.PageFetcher
	switch environment.GetFetcher() {
	case "chrome":
		fetcher = services.NewChromeFetcher(environment.GetMenuBaseURL(), environment.GetFetchTimeout())
	default:
		fetcher = services.NewHTTPFetcher(environment.GetMenuBaseURL(), environment.GetFetchTimeout(), environment.GetFetchRate())
	}

	pages := services.NewPageCache(environment.GetDataRoot())
	store := services.NewMenuStore(environment.GetOutputRoot())
	acquisition := services.NewAcquisitionService(
		services.NewFetchService(fetcher, pages, logger.Named("fetch")),
		pages,
		services.NewMenuParser(),
		store,
		services.AcquisitionOptions{
			Concurrency: environment.GetFetchConcurrency(),
			Logger:      logger.Named("acquisition"),
		},
	)

	return &app{
		logger:      logger,
		acquisition: acquisition,
		schedule:    schedule,
		query:       services.NewMenuQueryService(acquisition, schedule),
	}, nil
}

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	db, err := database.InitSQLite(environment.GetUsersDBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	if environment.GetAppEnv() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := v1.NewRouter(v1.Dependencies{
		Query:       a.query,
		Acquisition: a.acquisition,
		Schedule:    a.schedule,
		Preferences: services.NewPreferenceService(db),
	}, a.logger.Named("http"), environment.GetCORSOrigins())

	srv := &http.Server{
		Addr:    ":" + environment.GetPort(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
