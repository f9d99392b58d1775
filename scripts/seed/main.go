package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/supplydesk/internal/app"
	"github.com/odyssey-erp/supplydesk/internal/auth"
	"github.com/odyssey-erp/supplydesk/internal/platform/db"
	"github.com/odyssey-erp/supplydesk/internal/supplyrequests"
)

var defaultUsers = []string{
	"admin:admin123:admin",
	"supervisor:super123:supervisor",
	"staff:staff123:staff",
}

func main() {
	cfg, err := app.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx := context.Background()
	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: 2})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	fmt.Println("→ Seeding users...")
	if err := seedUsers(ctx, pool); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	fmt.Println("→ Seeding supply requests...")
	if err := seedSupplyRequests(ctx, pool); err != nil {
		log.Fatalf("seed supply requests: %v", err)
	}

	fmt.Println("✓ Seed complete at", time.Now().Format(time.RFC3339))
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	entries := defaultUsers
	if raw := os.Getenv("AUTH_USERS"); raw != "" {
		entries = strings.Split(raw, ",")
	}
	creds, err := auth.ParseCredentials(entries)
	if err != nil {
		return err
	}
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO app_users (username, password_hash, role, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT DO NOTHING`, c.Username, string(hash), c.Role)
		if err != nil {
			return err
		}
	}
	return nil
}

// seedSupplyRequests only fills an empty table so reruns do not duplicate rows.
func seedSupplyRequests(ctx context.Context, pool *pgxpool.Pool) error {
	repo := supplyrequests.NewRepository(pool)
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("  %d requests present, skipping\n", len(existing))
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	day := func(offset int) *time.Time {
		t := today.AddDate(0, 0, offset)
		return &t
	}
	text := func(s string) *string { return &s }

	samples := []supplyrequests.SupplyRequest{
		{ItemName: "Nitrile gloves (box of 100)", Quantity: 10, Priority: supplyrequests.PriorityHigh, Status: supplyrequests.StatusPending, RequestedBy: "Ana", NeededBy: day(7), Justification: text("Ward restock"), RequestedOn: *day(-2)},
		{ItemName: "Printer toner", Quantity: 2, Priority: supplyrequests.PriorityLow, Status: supplyrequests.StatusApproved, RequestedBy: "Ben", PreferredSupplier: text("Office Depot"), RequestedOn: *day(-5)},
		{ItemName: "Safety goggles", Quantity: 15, Priority: supplyrequests.PriorityUrgent, Status: supplyrequests.StatusOrdered, RequestedBy: "Chen", NeededBy: day(2), RequestedOn: *day(-1)},
		{ItemName: "Hand sanitizer 500ml", Quantity: 24, Priority: supplyrequests.PriorityMedium, Status: supplyrequests.StatusFulfilled, RequestedBy: "Dewi", RequestedOn: *day(-14)},
	}
	for _, s := range samples {
		id, err := repo.Create(ctx, s)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s\n", supplyrequests.FormatID(id), s.ItemName)
	}
	return nil
}
