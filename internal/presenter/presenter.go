package presenter

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
)

// RankingRow is a ranking entry shaped for display: 1-indexed position plus a
// medal for the podium. Pure formatting, no business rules.
type RankingRow struct {
	Posicao int    `json:"posicao"`
	Medalha string `json:"medalha,omitempty"`
	bolao.RankingEntry
}

const (
	MedalhaOuro   = "ouro"
	MedalhaPrata  = "prata"
	MedalhaBronze = "bronze"
)

func medalha(posicao int) string {
	switch posicao {
	case 1:
		return MedalhaOuro
	case 2:
		return MedalhaPrata
	case 3:
		return MedalhaBronze
	default:
		return ""
	}
}

func FormatRanking(entries []bolao.RankingEntry) []RankingRow {
	rows := make([]RankingRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, RankingRow{
			Posicao:      i + 1,
			Medalha:      medalha(i + 1),
			RankingEntry: e,
		})
	}
	return rows
}

// ErroParaResposta maps domain errors to an HTTP status and a user-facing
// message. Business-rule rejections are denials, not system faults; storage
// failures stay opaque.
func ErroParaResposta(err error) (int, string) {
	switch {
	case errors.Is(err, bolao.ErrPlacarInvalido):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, bolao.ErrJogoEncerrado):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, bolao.ErrPalpitesFechados):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound, "registro não encontrado"
	default:
		return http.StatusInternalServerError, "erro interno"
	}
}

// FalhaLoteRow is one rejected row of a batch submission, for the response
// body of a partial write.
type FalhaLoteRow struct {
	JogoID string `json:"jogo_id"`
	Motivo string `json:"motivo"`
}

func FormatFalhasLote(e *bolao.PartialBatchWriteError) []FalhaLoteRow {
	rows := make([]FalhaLoteRow, 0, len(e.Falhas))
	for _, f := range e.Falhas {
		rows = append(rows, FalhaLoteRow{JogoID: f.JogoID.String(), Motivo: f.Err.Error()})
	}
	return rows
}
