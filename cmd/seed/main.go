package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"padang/internal/remote"
	"padang/internal/shared/config"
	"padang/internal/shared/constants"
	"padang/internal/shared/database"
	"padang/internal/teams"
	"padang/internal/venues"
	"padang/pkg/cache"
	"padang/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Seeder struct {
	db      *database.DB
	service teams.Service
	players int
}

func main() {
	fmt.Println("🌱 Starting Padang Remote Store Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg, database.Options{PostgreSQL: true, Migrate: true, Redis: true})
	if err != nil {
		log.Printf("Redis unavailable, seeding PostgreSQL only: %v", err)
		db, err = database.InitDB(cfg, database.Options{PostgreSQL: true, Migrate: true})
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}
	defer db.Close()

	var cacheService cache.Service
	if rdb := db.GetRedis(); rdb != nil {
		cacheService = cache.NewService(rdb)
	}

	registry := venues.DefaultRegistry(cfg.Booking.LandingPage)
	seeder := &Seeder{
		db:      db,
		service: teams.NewService(teams.NewRepository(db.GetPostgreSQL()), registry, cacheService, logger.GetDefault()),
		players: cfg.Booking.PlayersPerTeam,
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding teams...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Some slots are now booked for testing.")
}

// CleanDatabase truncates the team tables, players first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		teams.Player{}.TableName(),
		teams.Team{}.TableName(),
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll registers a handful of teams through the store service so the
// same validation and cache invalidation apply
func (s *Seeder) SeedAll(ctx context.Context) error {
	seeds := []struct {
		team   string
		venue  string
		slot   string
		status string
	}{
		{"Harimau Muda", "Padang A", "A1", remote.PaymentStatusPaid},
		{"Kilat FC", "Padang A", "B3", remote.PaymentStatusPaid},
		{"Seladang United", "Padang B", "C2", remote.PaymentStatusPaid},
		{"Rajawali", "Padang C", "D4", remote.PaymentStatusPaid},
		// pending teams do not book their slot
		{"Belum Bayar XI", "Padang C", "A2", "pending"},
	}

	for _, seed := range seeds {
		reg := remote.TeamRegistration{
			TeamName:      seed.team,
			Venue:         seed.venue,
			Slot:          seed.slot,
			Players:       s.roster(seed.team),
			PaymentStatus: seed.status,
		}
		if seed.status == remote.PaymentStatusPaid {
			reg.PaymentRef = uuid.NewString()
		}

		team, err := s.service.RegisterTeam(ctx, teams.FromWire(reg))
		if err != nil {
			if errors.Is(err, teams.ErrDuplicateSlot) {
				fmt.Printf("    ⚠️  Slot %s at %s already taken, skipping\n", seed.slot, seed.venue)
				continue
			}
			return fmt.Errorf("failed to seed team %s: %w", seed.team, err)
		}
		fmt.Printf("    ✅ Registered team: %s (%s %s, %s)\n", team.TeamName, team.Venue, team.Slot, team.PaymentStatus)
	}

	// Drop any stale booked-slot index
	if rdb := s.db.GetRedis(); rdb != nil {
		if err := rdb.Del(ctx, constants.CACHE_KEY_BOOKED_SLOTS).Err(); err != nil {
			log.Printf("Warning: Failed to clear booked slots cache: %v", err)
		}
	}

	return nil
}

func (s *Seeder) roster(team string) []remote.Player {
	players := make([]remote.Player, 0, s.players)
	for i := 1; i <= s.players; i++ {
		players = append(players, remote.Player{
			Name:     fmt.Sprintf("%s Player %d", team, i),
			IDNumber: "9001" + strconv.Itoa(100000+i*37),
		})
	}
	return players
}
