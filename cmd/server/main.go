package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/codequest-dev/codequest-server/accounts"
	fakeaccountrepo "github.com/codequest-dev/codequest-server/accounts/repofake"
	"github.com/codequest-dev/codequest-server/auth"
	"github.com/codequest-dev/codequest-server/internal/config"
	"github.com/codequest-dev/codequest-server/playground"
	"github.com/codequest-dev/codequest-server/server"
	"github.com/codequest-dev/codequest-server/users"
	fakeuserrepo "github.com/codequest-dev/codequest-server/users/repofake"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()

	// Refusing to serve beats signing tokens with an undefined secret.
	if c.GetJWTSecret() == "" {
		return errors.New("JWT_SECRET is not set")
	}

	authority, err := auth.NewAuthority(auth.NewHMACSigner(c.GetJWTSecret()))
	if err != nil {
		return fmt.Errorf("auth.NewAuthority: %w", err)
	}

	repos, err := buildRepos(c)
	if err != nil {
		return fmt.Errorf("buildRepos: %w", err)
	}

	runner := playground.NewRunner(c.GetExecTimeout())

	srv, err := server.New(c, authority, repos, runner)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	displayAppname(c.GetAppName())
	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildRepos(c config.Config) (server.Repos, error) {
	dsn := c.GetDatabaseDSN()
	if dsn == "" {
		log.Printf("No DATABASE_DSN set, using in-memory stores\n")
		return server.Repos{
			Accounts: fakeaccountrepo.NewFakeAccountRepo(),
			Users:    fakeuserrepo.NewFakeUserRepo(),
		}, nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return server.Repos{}, fmt.Errorf("sql.Open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accountRepo := accounts.NewPostgresRepository(db)
	if err := accountRepo.EnsureSchema(ctx); err != nil {
		return server.Repos{}, err
	}
	userRepo := users.NewPostgresRepository(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		return server.Repos{}, err
	}

	return server.Repos{Accounts: accountRepo, Users: userRepo}, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
