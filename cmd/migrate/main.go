// Command migrate manages the portal database schema and bootstrap data.
//
// Usage:
//
//	migrate -dsn "$PORTAL_PG_DSN" up
//	migrate -dsn "$PORTAL_PG_DSN" down
//	migrate -dsn "$PORTAL_PG_DSN" status
//	migrate -dsn "$PORTAL_PG_DSN" seed
//	migrate -dsn "$PORTAL_PG_DSN" create-admin -email admin@example.org -name Admin -password s3cret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"municipio.org/internal/auth"
	"municipio.org/internal/migrate"
	"municipio.org/internal/store/pg"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("PORTAL_PG_DSN"), "Postgres DSN")
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	seedsDir := flag.String("seeds", "seeds", "seeds directory")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("a Postgres DSN is required (use -dsn or PORTAL_PG_DSN)")
	}
	if flag.NArg() < 1 {
		log.Fatal("a command is required: up, down, status, seed or create-admin")
	}

	store, err := pg.Open(*dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	runner := migrate.NewRunner(store.DB(), *migrationsDir, *seedsDir)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		if err := runner.Up(ctx); err != nil {
			log.Fatalf("up: %v", err)
		}
		log.Println("migrations applied")
	case "down":
		if err := runner.Down(ctx); err != nil {
			log.Fatalf("down: %v", err)
		}
		log.Println("last migration rolled back")
	case "status":
		applied, err := runner.Status(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		if len(applied) == 0 {
			fmt.Println("no migrations applied")
			return
		}
		for _, name := range applied {
			fmt.Println(name)
		}
	case "seed":
		if err := runner.Seed(ctx); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("seeds applied")
	case "create-admin":
		createAdmin(ctx, store, flag.Args()[1:])
	default:
		log.Fatalf("unknown command %q", cmd)
	}
}

// createAdmin bootstraps the first administrator account so the admin panel
// is reachable on a fresh database.
func createAdmin(ctx context.Context, store *pg.Store, args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "administrator email")
	name := fs.String("name", "", "administrator display name")
	password := fs.String("password", "", "administrator password")
	_ = fs.Parse(args)

	svc, err := auth.NewService(store, nil)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	acct, err := svc.CreateAccount(ctx, auth.NewAccount{
		Email:    *email,
		Name:     *name,
		Password: *password,
		Role:     string(auth.RoleAdministrator),
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("administrator %s created with id %s", acct.Email, acct.ID)
}
