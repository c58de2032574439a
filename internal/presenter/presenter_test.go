package presenter

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRanking(t *testing.T) {
	entries := []bolao.RankingEntry{
		{Nickname: "lider", TotalPontos: 20},
		{Nickname: "vice", TotalPontos: 15},
		{Nickname: "terceiro", TotalPontos: 10},
		{Nickname: "quarto", TotalPontos: 5},
	}

	rows := FormatRanking(entries)
	require.Len(t, rows, 4)

	assert.Equal(t, 1, rows[0].Posicao)
	assert.Equal(t, MedalhaOuro, rows[0].Medalha)
	assert.Equal(t, MedalhaPrata, rows[1].Medalha)
	assert.Equal(t, MedalhaBronze, rows[2].Medalha)
	assert.Equal(t, 4, rows[3].Posicao)
	assert.Empty(t, rows[3].Medalha)
}

func TestFormatRankingEmpty(t *testing.T) {
	assert.Empty(t, FormatRanking(nil))
}

func TestErroParaResposta(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "placar inválido", err: bolao.ErrPlacarInvalido, expected: http.StatusUnprocessableEntity},
		{name: "jogo encerrado", err: bolao.ErrJogoEncerrado, expected: http.StatusUnprocessableEntity},
		{name: "palpites fechados", err: bolao.ErrPalpitesFechados, expected: http.StatusUnprocessableEntity},
		{name: "não encontrado", err: sql.ErrNoRows, expected: http.StatusNotFound},
		{name: "falha de fetch", err: &bolao.DataFetchError{Op: "x", Err: errors.New("boom")}, expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := ErroParaResposta(tc.err)
			assert.Equal(t, tc.expected, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestFormatFalhasLote(t *testing.T) {
	jogoID := uuid.New()
	e := &bolao.PartialBatchWriteError{Falhas: []bolao.FalhaLote{
		{JogoID: jogoID, Err: bolao.ErrPalpitesFechados},
	}}

	rows := FormatFalhasLote(e)
	require.Len(t, rows, 1)
	assert.Equal(t, jogoID.String(), rows[0].JogoID)
	assert.Equal(t, bolao.ErrPalpitesFechados.Error(), rows[0].Motivo)
}
