package service

import (
	"context"
	"testing"
	"time"

	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInserirResultadoPontuaPalpites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	rodadaService := NewRodadaService(db, jogoStore, palpiteStore)

	jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))

	exato := criarPerfil(t, userStore)
	resultadoCerto := criarPerfil(t, userStore)
	errado := criarPerfil(t, userStore)

	palpites := map[*bolao.Profile][2]int{
		exato:          {2, 1},
		resultadoCerto: {1, 0},
		errado:         {0, 2},
	}
	for perfil, placar := range palpites {
		_, err := palpiteStore.Upsert(ctx, bolao.PalpiteSubmission{
			UsuarioID: perfil.ID, JogoID: jogo.ID, PalpiteCasa: placar[0], PalpiteVisitante: placar[1],
		})
		require.NoError(t, err)
	}

	atualizado, err := rodadaService.InserirResultado(ctx, jogo.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, bolao.JogoFinalizado, atualizado.Status)
	assert.Equal(t, 2, utils.OrZero(atualizado.PlacarCasa))
	assert.Equal(t, 1, utils.OrZero(atualizado.PlacarVisit))

	esperados := map[*bolao.Profile]int{exato: 5, resultadoCerto: 3, errado: 0}
	for perfil, pontos := range esperados {
		palpite, err := palpiteStore.GetByUsuarioEJogo(ctx, perfil.ID, jogo.ID)
		require.NoError(t, err)
		require.NotNil(t, palpite.PontosObtidos)
		assert.Equal(t, pontos, *palpite.PontosObtidos, "pontos de %s", perfil.Nickname)
	}
}

func TestInserirResultadoRejeitaPlacarNegativo(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	rodadaService := NewRodadaService(db, jogoStore, palpiteStore)

	jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))

	_, err := rodadaService.InserirResultado(context.Background(), jogo.ID, -1, 0)
	assert.ErrorIs(t, err, bolao.ErrPlacarInvalido)

	// Nothing was written.
	recarregado, err := jogoStore.GetJogo(context.Background(), jogo.ID.String())
	require.NoError(t, err)
	assert.Equal(t, bolao.JogoAgendado, recarregado.Status)
	assert.Nil(t, recarregado.PlacarCasa)
}

func TestRodadaAtual(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	rodadaService := NewRodadaService(db, jogoStore, palpiteStore)

	atual, err := rodadaService.RodadaAtual(ctx)
	require.NoError(t, err)
	assert.Nil(t, atual, "sem rodadas abertas não há rodada atual")

	_, err = rodadaService.CriarRodada(ctx, 2, nil, nil)
	require.NoError(t, err)
	primeira, err := rodadaService.CriarRodada(ctx, 1, nil, nil)
	require.NoError(t, err)

	atual, err = rodadaService.RodadaAtual(ctx)
	require.NoError(t, err)
	require.NotNil(t, atual)
	assert.Equal(t, primeira.ID, atual.ID, "a rodada aberta de menor número vem primeiro")
}

func TestCriarJogoValidaEntrada(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	rodadaService := NewRodadaService(db, jogoStore, palpiteStore)

	rodada, err := rodadaService.CriarRodada(ctx, 1, nil, nil)
	require.NoError(t, err)

	_, err = rodadaService.CriarJogo(ctx, JogoInput{
		RodadaID: rodada.ID, TimeCasa: "  ", TimeVisitante: "Santos", DataJogo: time.Now(),
	})
	assert.ErrorIs(t, err, ErrJogoSemTimes)

	jogo, err := rodadaService.CriarJogo(ctx, JogoInput{
		RodadaID: rodada.ID, TimeCasa: " Santos ", TimeVisitante: "Vasco", DataJogo: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Santos", jogo.TimeCasa)
	assert.Equal(t, bolao.JogoAgendado, jogo.Status)
}
