package app

import (
	"net/http"

	"chapter-points-go/internal/config"
	"chapter-points-go/internal/db"
	authdomain "chapter-points-go/internal/domain/auth"
	memberdomain "chapter-points-go/internal/domain/member"
	pointsdomain "chapter-points-go/internal/domain/points"
	authrepo "chapter-points-go/internal/repository/postgres/auth"
	memberrepo "chapter-points-go/internal/repository/postgres/member"
	pointsrepo "chapter-points-go/internal/repository/postgres/points"
	"chapter-points-go/internal/transport/httpserver"
	"chapter-points-go/internal/transport/httpserver/handler"
	authhandler "chapter-points-go/internal/transport/httpserver/handler/auth"
	membershandler "chapter-points-go/internal/transport/httpserver/handler/members"
	pointshandler "chapter-points-go/internal/transport/httpserver/handler/points"
	"chapter-points-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	memberService := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	pointsService := pointsdomain.NewService(pointsrepo.NewPostgres(dbConn))
	authService := authdomain.NewService(authrepo.NewPostgres(dbConn), authdomain.Config{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
		BcryptCost:    cfg.Auth.BcryptCost,
	})

	handlers := handler.New(
		authhandler.New(authService, memberService, log),
		membershandler.New(memberService, log),
		pointshandler.New(pointsService, log),
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, authService, log)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
