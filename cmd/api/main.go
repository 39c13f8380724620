package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/lead-router/internal/auth"
	"github.com/octobees/lead-router/internal/config"
	"github.com/octobees/lead-router/internal/database"
	"github.com/octobees/lead-router/internal/entity"
	"github.com/octobees/lead-router/internal/handler"
	middlewarepkg "github.com/octobees/lead-router/internal/middleware"
	"github.com/octobees/lead-router/internal/repository"
	"github.com/octobees/lead-router/internal/router"
	"github.com/octobees/lead-router/internal/service"
	"github.com/octobees/lead-router/internal/service/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	var (
		usersRepo     repository.UsersRepository
		teamRepo      repository.TeamRepository
		rulesRepo     repository.RulesRepository
		decisionsRepo repository.DecisionsRepository
		members       []entity.TeamMember
		rules         []entity.RoutingRule
	)

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()

		usersRepo = repository.NewPGXUsersRepository(pool)
		teamRepo = repository.NewPGXTeamRepository(pool)
		rulesRepo = repository.NewPGXRulesRepository(pool)
		decisionsRepo = repository.NewPGXDecisionsRepository(pool)

		members, err = teamRepo.ListActive(ctx)
		if err != nil {
			log.Fatalf("failed to load team roster: %v", err)
		}
		rules, err = rulesRepo.ListActive(ctx)
		if err != nil {
			log.Fatalf("failed to load routing rules: %v", err)
		}
		if len(members) == 0 {
			log.Print("team_members table is empty, using built-in roster")
		}
		if len(rules) == 0 {
			log.Print("routing_rules table is empty, using built-in rules")
		}
	} else {
		log.Print("DATABASE_URL not set, running on built-in roster without persistence")
	}

	engine := routing.NewEngine(members, rules)

	var authService *service.AuthService
	if usersRepo != nil {
		authService = service.NewAuthService(usersRepo, jwtManager)
		if cfg.AdminPassword != "" {
			if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				log.Fatalf("failed to seed admin user: %v", err)
			}
		}
	} else {
		authService = service.NewAuthService(service.StaticAdmin(cfg.AdminEmail, cfg.AdminPassword), jwtManager)
	}

	var dispatcher handler.DispatchPoster
	if cfg.DispatchWorkerURL != "" {
		httpClient := &http.Client{Timeout: 15 * time.Second}
		dispatcher = handler.NewDispatchClient(httpClient, cfg.DispatchWorkerURL)
	}

	intake := service.NewLeadIntake(cfg.PhoneRegion)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Routing: handler.NewRoutingHandler(engine, intake, decisionsRepo, dispatcher),
		Team:    handler.NewTeamHandler(engine, teamRepo),
		Rules:   handler.NewRulesHandler(engine, rulesRepo),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
