package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/config"
	"github.com/mauv0809/kickabout/internal/database"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/roster"
)

// demoPlayers is a full two-keeper squad of fourteen.
var demoPlayers = []roster.PlayerInput{
	{Name: "Volkan", Position: balancer.Goalkeeper, Rating: 78},
	{Name: "Rüştü", Position: balancer.Goalkeeper, Rating: 82},
	{Name: "Alpay", Position: balancer.Defender, Rating: 74},
	{Name: "Bülent", Position: balancer.Defender, Rating: 70},
	{Name: "Fatih", Position: balancer.Defender, Rating: 66},
	{Name: "Ogün", Position: balancer.Defender, Rating: 61},
	{Name: "Emre", Position: balancer.Midfielder, Rating: 88},
	{Name: "Tugay", Position: balancer.Midfielder, Rating: 84},
	{Name: "Yıldıray", Position: balancer.Midfielder, Rating: 72},
	{Name: "Ümit", Position: balancer.Midfielder, Rating: 68},
	{Name: "Hakan", Position: balancer.Forward, Rating: 92},
	{Name: "Hasan", Position: balancer.Forward, Rating: 80},
	{Name: "Nihat", Position: balancer.Forward, Rating: 76},
	{Name: "İlhan", Position: balancer.Forward, Rating: 58},
}

func main() {
	log.Info("Starting database seeder...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	owner := cfg.Seed.OwnerID
	rosterStore := roster.New(db)
	count, err := rosterStore.Count(owner)
	if err != nil {
		log.Fatalf("Failed to count players: %s", err)
	}
	if count > 0 {
		log.Info("Roster already seeded, nothing to do", "owner", owner, "players", count)
		return
	}

	players := make([]roster.Player, 0, len(demoPlayers))
	for _, in := range demoPlayers {
		p, err := rosterStore.AddPlayer(owner, in)
		if err != nil {
			log.Fatalf("Failed to insert demo player %s: %s", in.Name, err)
		}
		players = append(players, *p)
	}
	log.Info("Inserted demo players", "owner", owner, "count", len(players))

	res, err := balancer.New().Generate(roster.EnginePlayers(players), nil)
	if err != nil {
		log.Fatalf("Failed to generate demo teams: %s", err)
	}
	match, err := fixture.New(db).Plan(owner, fixture.Plan{
		TeamA:      res.TeamA,
		TeamB:      res.TeamB,
		Stats:      res.Stats,
		Prediction: res.Prediction,
		Location:   "Demo Arena",
		Date:       time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour),
	})
	if err != nil {
		log.Fatalf("Failed to plan demo match: %s", err)
	}
	log.Info("Planned demo match", "matchID", match.ID, "prediction", match.Prediction)
}
