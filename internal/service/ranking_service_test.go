package service

import (
	"context"
	"testing"
	"time"

	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end: predictions go in, a result is entered, the ranking comes out
// ordered and scoped.
func TestRankingFimAFim(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userStore := store.NewUserStore(db)
	jogoStore := store.NewJogoStore(db)
	palpiteStore := store.NewPalpiteStore(db)
	rodadaService := NewRodadaService(db, jogoStore, palpiteStore)
	rankingService := NewRankingService(db, userStore, palpiteStore, jogoStore)

	jogo := criarJogo(t, jogoStore, 1, time.Now().Add(2*time.Hour))

	x := criarPerfil(t, userStore)
	y := criarPerfil(t, userStore)
	z := criarPerfil(t, userStore)
	semPalpite := criarPerfil(t, userStore)

	palpites := []struct {
		perfil *bolao.Profile
		placar [2]int
	}{
		{x, [2]int{2, 1}},
		{y, [2]int{1, 0}},
		{z, [2]int{0, 2}},
	}
	for _, p := range palpites {
		_, err := palpiteStore.Upsert(ctx, bolao.PalpiteSubmission{
			UsuarioID: p.perfil.ID, JogoID: jogo.ID, PalpiteCasa: p.placar[0], PalpiteVisitante: p.placar[1],
		})
		require.NoError(t, err)
	}

	_, err := rodadaService.InserirResultado(ctx, jogo.ID, 2, 1)
	require.NoError(t, err)

	// Scoped to the round: the inactive user is excluded.
	porRodada, err := rankingService.Ranking(ctx, &jogo.RodadaID)
	require.NoError(t, err)
	require.Len(t, porRodada, 3)
	assert.Equal(t, x.ID, porRodada[0].UserID)
	assert.Equal(t, 5, porRodada[0].TotalPontos)
	assert.Equal(t, y.ID, porRodada[1].UserID)
	assert.Equal(t, 3, porRodada[1].TotalPontos)
	assert.Equal(t, z.ID, porRodada[2].UserID)
	assert.Equal(t, 0, porRodada[2].TotalPontos)

	// Global: everyone appears, inactive user last with zero.
	global, err := rankingService.Ranking(ctx, nil)
	require.NoError(t, err)
	require.Len(t, global, 4)
	assert.Equal(t, semPalpite.ID, global[3].UserID)
	assert.Equal(t, 0, global[3].TotalJogos)

	top, err := rankingService.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, x.ID, top[0].UserID)
}
