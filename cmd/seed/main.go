// Command seed fills a development database with fake profiles, one round of
// matches and predictions for everyone, so the ranking has something to show.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/config"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/db"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/utils"
)

var times = []string{
	"Flamengo", "Palmeiras", "São Paulo", "Corinthians",
	"Grêmio", "Internacional", "Atlético-MG", "Cruzeiro",
	"Botafogo", "Fluminense", "Santos", "Vasco",
	"Bahia", "Vitória", "Fortaleza", "Ceará",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database := db.InitDB(cfg.DatabasePath)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()
	userStore := store.NewUserStore(database)
	jogoStore := store.NewJogoStore(database)
	palpiteStore := store.NewPalpiteStore(database)

	admin := &bolao.Profile{
		ID:       uuid.New(),
		Nome:     "Administrador",
		Nickname: "admin",
		Email:    utils.Ptr("admin@bolao.local"),
	}
	if err := userStore.CreateProfile(ctx, admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}
	if err := userStore.SetRole(ctx, admin.ID, bolao.RoleAdmin); err != nil {
		log.Fatal("Failed to set admin role:", err)
	}

	var perfis []*bolao.Profile
	for i := 0; i < 10; i++ {
		p := &bolao.Profile{
			ID:       uuid.New(),
			Nome:     gofakeit.Name(),
			Nickname: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    utils.Ptr(gofakeit.Email()),
		}
		if err := userStore.CreateProfile(ctx, p); err != nil {
			log.Fatal("Failed to create profile:", err)
		}
		perfis = append(perfis, p)
	}

	rodada := &bolao.Rodada{
		ID:         uuid.New(),
		Numero:     1,
		DataInicio: utils.Ptr(time.Now().Add(24 * time.Hour)),
		Status:     bolao.RodadaFutura,
	}
	if err := jogoStore.CreateRodada(ctx, rodada); err != nil {
		log.Fatal("Failed to create rodada:", err)
	}

	var jogos []*bolao.Jogo
	for i := 0; i < len(times); i += 2 {
		jogo := &bolao.Jogo{
			ID:            uuid.New(),
			RodadaID:      rodada.ID,
			TimeCasa:      times[i],
			TimeVisitante: times[i+1],
			DataJogo:      time.Now().Add(time.Duration(24+i) * time.Hour),
			Status:        bolao.JogoAgendado,
		}
		if err := jogoStore.CreateJogo(ctx, jogo); err != nil {
			log.Fatal("Failed to create jogo:", err)
		}
		jogos = append(jogos, jogo)
	}

	total := 0
	for _, p := range perfis {
		for _, jogo := range jogos {
			_, err := palpiteStore.Upsert(ctx, bolao.PalpiteSubmission{
				UsuarioID:        p.ID,
				JogoID:           jogo.ID,
				PalpiteCasa:      rand.Intn(4),
				PalpiteVisitante: rand.Intn(4),
			})
			if err != nil {
				log.Fatal("Failed to create palpite:", err)
			}
			total++
		}
	}

	log.Printf("Seeded %d profiles, %d jogos, %d palpites", len(perfis)+1, len(jogos), total)
}
