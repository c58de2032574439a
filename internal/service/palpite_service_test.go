package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:?cache=shared&_fk=1")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func criarPerfil(t *testing.T, userStore *store.UserStore) *bolao.Profile {
	t.Helper()
	profile := &bolao.Profile{
		ID:       uuid.New(),
		Nome:     gofakeit.Name(),
		Nickname: gofakeit.Username() + uuid.NewString()[:8],
	}
	require.NoError(t, userStore.CreateProfile(context.Background(), profile))
	return profile
}

func criarJogo(t *testing.T, jogoStore *store.JogoStore, numero int, kickoff time.Time) *bolao.Jogo {
	t.Helper()
	ctx := context.Background()

	rodada := &bolao.Rodada{ID: uuid.New(), Numero: numero, Status: bolao.RodadaFutura}
	require.NoError(t, jogoStore.CreateRodada(ctx, rodada))

	jogo := &bolao.Jogo{
		ID:            uuid.New(),
		RodadaID:      rodada.ID,
		TimeCasa:      "Grêmio",
		TimeVisitante: "Internacional",
		DataJogo:      kickoff,
		Status:        bolao.JogoAgendado,
	}
	require.NoError(t, jogoStore.CreateJogo(ctx, jogo))
	return jogo
}

func TestSubmeterPalpite(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	palpiteService := NewPalpiteService(db, palpiteStore, jogoStore, userStore, time.Minute)

	perfil := criarPerfil(t, userStore)
	jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))

	palpite, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
		UsuarioID:        perfil.ID,
		JogoID:           jogo.ID,
		PalpiteCasa:      2,
		PalpiteVisitante: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, palpite.PalpiteCasa)
	assert.Equal(t, 1, palpite.PalpiteVisit)
	assert.Nil(t, palpite.PontosObtidos)

	// Resubmission updates in place.
	atualizado, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
		UsuarioID:        perfil.ID,
		JogoID:           jogo.ID,
		PalpiteCasa:      0,
		PalpiteVisitante: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, palpite.ID, atualizado.ID)
	assert.Equal(t, 0, atualizado.PalpiteCasa)
}

func TestSubmeterPalpiteRejeicoes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	palpiteService := NewPalpiteService(db, palpiteStore, jogoStore, userStore, time.Minute)

	perfil := criarPerfil(t, userStore)

	t.Run("Palpite negativo", func(t *testing.T) {
		jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))
		_, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
			UsuarioID: perfil.ID, JogoID: jogo.ID, PalpiteCasa: -1, PalpiteVisitante: 0,
		})
		assert.ErrorIs(t, err, bolao.ErrPlacarInvalido)
	})

	t.Run("Janela fechada", func(t *testing.T) {
		jogo := criarJogo(t, jogoStore, 2, time.Now().Add(30*time.Second))
		_, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
			UsuarioID: perfil.ID, JogoID: jogo.ID, PalpiteCasa: 1, PalpiteVisitante: 0,
		})
		assert.ErrorIs(t, err, bolao.ErrPalpitesFechados)
	})

	t.Run("Jogo finalizado", func(t *testing.T) {
		jogo := criarJogo(t, jogoStore, 3, time.Now().Add(2*time.Hour))
		jogo.Status = bolao.JogoFinalizado
		require.NoError(t, jogoStore.UpdateJogo(ctx, jogo))

		_, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
			UsuarioID: perfil.ID, JogoID: jogo.ID, PalpiteCasa: 1, PalpiteVisitante: 0,
		})
		assert.ErrorIs(t, err, bolao.ErrJogoEncerrado)
	})
}

func TestSubmeterLoteMisto(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	palpiteService := NewPalpiteService(db, palpiteStore, jogoStore, userStore, time.Minute)

	perfil := criarPerfil(t, userStore)
	aberto := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))
	fechado := criarJogo(t, jogoStore, 2, time.Now().Add(-time.Hour))

	salvos, err := palpiteService.SubmeterLote(ctx, perfil.ID, []LoteItem{
		{JogoID: aberto.ID, PalpiteCasa: 2, PalpiteVisitante: 0},
		{JogoID: fechado.ID, PalpiteCasa: 1, PalpiteVisitante: 1},
		{JogoID: uuid.New(), PalpiteCasa: 1, PalpiteVisitante: 0},
	})

	var parcial *bolao.PartialBatchWriteError
	require.ErrorAs(t, err, &parcial)
	assert.Len(t, parcial.Falhas, 2)

	require.Len(t, salvos, 1)
	assert.Equal(t, aberto.ID, salvos[0].JogoID)
}

func TestMeusPalpitesComJogo(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	palpiteService := NewPalpiteService(db, palpiteStore, jogoStore, userStore, time.Minute)

	perfil := criarPerfil(t, userStore)
	jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))

	_, err := palpiteService.SubmeterPalpite(ctx, bolao.PalpiteSubmission{
		UsuarioID: perfil.ID, JogoID: jogo.ID, PalpiteCasa: 3, PalpiteVisitante: 1,
	})
	require.NoError(t, err)

	meus, err := palpiteService.MeusPalpites(ctx, perfil.ID, &jogo.RodadaID)
	require.NoError(t, err)
	require.Len(t, meus, 1)
	require.NotNil(t, meus[0].Jogo)
	assert.Equal(t, "Grêmio", meus[0].Jogo.TimeCasa)
}
