// adminctl is the operator CLI: it creates admin accounts and works the
// submission inbox from a terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bamdigital/site-backend/internal/config"
	"github.com/bamdigital/site-backend/internal/flow"
	"github.com/bamdigital/site-backend/internal/logging"
	"github.com/bamdigital/site-backend/internal/model"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: adminctl <command> [args]

Commands:
  create-admin -email <email> -password <password>
  list
  mark-read <id>
  delete <id> [-y]`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup()

	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "create-admin":
		createAdmin(ctx, cfg, os.Args[2:])
	case "list":
		listSubmissions(ctx, cfg)
	case "mark-read":
		if len(os.Args) < 3 {
			usage()
		}
		markRead(ctx, cfg, os.Args[2])
	case "delete":
		if len(os.Args) < 3 {
			usage()
		}
		skipConfirm := len(os.Args) > 3 && os.Args[3] == "-y"
		deleteSubmission(ctx, cfg, os.Args[2], skipConfirm)
	default:
		usage()
	}
}

func createAdmin(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "admin email address")
	password := fs.String("password", "", "admin password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "create-admin requires -email and -password")
		os.Exit(1)
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("database connect failed", "error", err)
	}
	defer pool.Close()

	hash, err := service.HashPassword(*password)
	if err != nil {
		logging.Fatal("hash password failed", "error", err)
	}

	userRepo := repository.NewPgUserRepository(pool)
	user := &model.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		logging.Fatal("create admin failed", "error", err)
	}
	fmt.Printf("created admin %s (%s)\n", user.Email, user.ID)
}

// newDashboard wires a dashboard against the configured store, with the
// terminal as confirmer and alerter.
func newDashboard(ctx context.Context, cfg config.Config, skipConfirm bool) (*flow.Dashboard, func()) {
	var (
		repo    repository.SubmissionRepository
		cleanup = func() {}
	)
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("database connect failed", "error", err)
		}
		cleanup = pool.Close
		repo = repository.NewPgSubmissionRepository(pool)
	case "mongo":
		client, err := repository.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			logging.Fatal("mongo connect failed", "error", err)
		}
		cleanup = func() { _ = client.Disconnect(ctx) }
		repo = repository.NewMongoSubmissionRepository(client.Database(cfg.MongoDB))
	case "memory":
		repo = repository.NewMemorySubmissionRepository()
	default:
		logging.Fatal("unknown store driver", "driver", cfg.StoreDriver)
	}

	confirm := flow.ConfirmerFunc(func(prompt string) bool {
		if skipConfirm {
			return true
		}
		fmt.Printf("%s [y/N] ", prompt)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		return strings.EqualFold(strings.TrimSpace(line), "y")
	})
	alert := flow.AlerterFunc(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})

	svc := service.NewSubmissionService(repo)
	return flow.NewDashboard(svc, confirm, alert), cleanup
}

func listSubmissions(ctx context.Context, cfg config.Config) {
	d, cleanup := newDashboard(ctx, cfg, false)
	defer cleanup()

	if err := d.Load(ctx); err != nil {
		logging.Fatal("load submissions failed", "error", err)
	}

	stats := d.Stats()
	fmt.Printf("%d submissions (%d unread)\n\n", stats.Total, stats.Unread)
	for _, s := range d.Submissions() {
		marker := " "
		if !s.Read {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %-28s %s\n", marker, s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Email, s.Name)
	}
}

func markRead(ctx context.Context, cfg config.Config, id string) {
	d, cleanup := newDashboard(ctx, cfg, false)
	defer cleanup()

	if err := d.Load(ctx); err != nil {
		logging.Fatal("load submissions failed", "error", err)
	}
	if err := d.MarkRead(ctx, id); err != nil {
		os.Exit(1)
	}
	fmt.Printf("marked %s read\n", id)
}

func deleteSubmission(ctx context.Context, cfg config.Config, id string, skipConfirm bool) {
	d, cleanup := newDashboard(ctx, cfg, skipConfirm)
	defer cleanup()

	if err := d.Load(ctx); err != nil {
		logging.Fatal("load submissions failed", "error", err)
	}
	if err := d.Delete(ctx, id); err != nil {
		os.Exit(1)
	}
	for _, s := range d.Submissions() {
		if s.ID == id {
			fmt.Println("aborted")
			return
		}
	}
	fmt.Printf("deleted %s\n", id)
}
