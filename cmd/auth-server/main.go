package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	authapi "github.com/nexa-labs/go-auth-api"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := authapi.LoadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store := authapi.NewUserStore(db)
	tokens := authapi.NewTokenService([]byte(cfg.JWTSecret), nil)

	mailer, err := buildMailer(cfg)
	if err != nil {
		return err
	}

	flows := authapi.NewAuthFlows(store, tokens, mailer)

	app := fiber.New(fiber.Config{
		AppName:      "auth-server",
		ErrorHandler: authapi.NewErrorHandler(cfg, nil),
	})

	controller := authapi.NewAuthController(flows, store, tokens)
	controller.RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	return app.Listen(cfg.Addr)
}

func openDatabase(cfg authapi.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if _, err := db.NewCreateTable().
		Model((*authapi.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func buildMailer(cfg authapi.Config) (authapi.Mailer, error) {
	if cfg.IsTest() {
		return authapi.NoopMailer{}, nil
	}
	return authapi.NewSMTPMailer(cfg)
}
