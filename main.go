package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/crease/config"
	_ "github.com/DhavalSuthar-24/crease/docs"
	"github.com/DhavalSuthar-24/crease/internal/live"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/internal/scoring"
	"github.com/DhavalSuthar-24/crease/pkg/token"
	"github.com/DhavalSuthar-24/crease/routes"
)

// @title Crease live scoring API
// @version 1.0
// @description Ball-by-ball cricket scoring with live scorecards.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	root := &cobra.Command{
		Use:   "crease",
		Short: "Live cricket scoring server",
	}
	root.AddCommand(serveCmd(), migrateCmd(), tokenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring API and live feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(); err != nil {
				return err
			}
			cfg := config.GetConfig()
			if migrate {
				if err := autoMigrate(); err != nil {
					return err
				}
			}

			hub := live.NewHub()
			service := match.NewMatchService(
				match.NewGormMatchRepository(config.DB),
				scoring.NewEngine(cfg.Scoring.RecentBalls),
				hub,
				cfg.Scoring.MaxRetries,
			)
			ws := live.NewWebSocketHandler(hub, func(ctx context.Context, id uint) (interface{}, error) {
				return service.GetMatch(ctx, id)
			}, match.ErrMatchNotFound, cfg.App.FrontendURL)

			srv := &http.Server{
				Addr:              ":" + cfg.App.Port,
				Handler:           routes.SetupRoutes(cfg, service, ws),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return hub.Run(gCtx)
			})
			g.Go(func() error {
				log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("failed to run server: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gCtx.Done()
				log.Println("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run AutoMigrate before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(); err != nil {
				return err
			}
			return autoMigrate()
		},
	}
}

func autoMigrate() error {
	if err := config.DB.AutoMigrate(&match.MatchRecord{}); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	log.Println("AutoMigrate successful")
	return nil
}

func tokenCmd() *cobra.Command {
	var (
		userID  uint
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a scorer or admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if minutes <= 0 {
				minutes = cfg.JWT.AccessTokenExpiryMinutes
			}
			tok, err := token.GenerateJWT(userID, role, cfg.JWT.AccessTokenSecret, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 1, "user id to put in the token")
	cmd.Flags().StringVar(&role, "role", token.RoleScorer, "scorer or admin")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "expiry in minutes (default from JWT_ACCESS_TOKEN_EXPIRY_MINUTES)")
	return cmd
}
