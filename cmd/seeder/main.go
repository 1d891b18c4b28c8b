package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/database"
	"github.com/mauv0809/la-canchita/internal/league"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "canchita.db",
		"MIGRATIONS_DIR": "migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	leagueStore := league.New(db)
	asadoStore := asado.New(db)

	season, err := leagueStore.CreateSeason("Clausura 2025", league.DefaultPointValues(), []string{"seeder-admin"})
	if err != nil {
		log.Fatalf("Failed to create season: %s", err)
	}
	log.Info("Created season", "seasonID", season.ID)

	names := []struct{ name, nickname string }{
		{"Anastasio", "Tolo"},
		{"Bruno", ""},
		{"Carlos", "Negro"},
		{"Diego", ""},
		{"Emiliano", "Emi"},
		{"Facundo", "Facu"},
		{"Gonzalo", "Gonza"},
		{"Hernán", ""},
		{"Ignacio", "Nacho"},
		{"Joaquín", "Joaco"},
	}

	playerIDs := make([]string, 0, len(names))
	for _, n := range names {
		p, err := leagueStore.AddPlayer(season.ID, n.name, n.nickname)
		if err != nil {
			log.Fatalf("Failed to add player %s: %s", n.name, err)
		}
		playerIDs = append(playerIDs, p.ID)
	}
	log.Info("Added players", "count", len(playerIDs))

	const numMatches = 20
	startTime := time.Now()

	for i := 0; i < numMatches; i++ {
		shuffled := make([]string, len(playerIDs))
		copy(shuffled, playerIDs)
		rand.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		var smoked []string
		if rand.Intn(3) == 0 {
			smoked = []string{shuffled[rand.Intn(len(shuffled))]}
		}

		_, err := leagueStore.CreateMatch(season.ID, league.NewMatch{
			Date:            time.Now().AddDate(0, 0, -(numMatches - i)),
			TeamA:           shuffled[:league.TeamSize],
			TeamB:           shuffled[league.TeamSize:],
			GoalDiff:        rand.Intn(9) - 4,
			SmokedPlayerIDs: smoked,
			CreatedBy:       "seeder-admin",
		})
		if err != nil {
			log.Fatalf("Failed to create match %d: %s", i, err)
		}
	}
	log.Info("Seeded matches", "count", numMatches, "duration", time.Since(startTime))

	for i := 0; i < 3; i++ {
		present := make([]string, len(playerIDs))
		copy(present, playerIDs)
		rand.Shuffle(len(present), func(a, b int) { present[a], present[b] = present[b], present[a] })
		present = present[:4+rand.Intn(len(present)-4)]

		_, err := asadoStore.CreateAsado(season.ID, asado.NewAsado{
			Date:             time.Now().AddDate(0, 0, -(7 * (3 - i))),
			Venue:            "lo de Tolo",
			PresentPlayerIDs: present,
			HostPlayerID:     present[0],
			AsadorPlayerID:   present[1],
			CreatedBy:        "seeder-admin",
		})
		if err != nil {
			log.Fatalf("Failed to create asado %d: %s", i, err)
		}
	}
	log.Info("Seeded asados", "count", 3)

	log.Info("Seeding finished", "seasonID", season.ID)
}
