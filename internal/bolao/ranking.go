package bolao

import (
	"sort"

	"github.com/google/uuid"
)

// RankingEntry is the derived standing of one user. It is recomputed on
// demand from predictions and matches, never persisted.
type RankingEntry struct {
	UserID                uuid.UUID `json:"user_id"`
	Nickname              string    `json:"nickname"`
	Nome                  string    `json:"nome"`
	AvatarURL             *string   `json:"avatar_url,omitempty"`
	TotalPontos           int       `json:"total_pontos"`
	TotalAcertosResultado int       `json:"total_acertos_resultado"`
	TotalAcertosPlacar    int       `json:"total_acertos_placar"`
	TotalJogos            int       `json:"total_jogos"`
}

// CalcularRanking folds predictions and matches into per-user standings.
//
// Every profile is seeded so inactive users appear in the global ranking.
// Predictions whose match is missing, unfinished, or outside the requested
// round are skipped; the three inputs come from independent fetches and this
// filter is what absorbs any read skew between them. Points use the persisted
// value when present and are recomputed from the final score otherwise, so a
// ranking rendered before a recompute finishes still counts the match.
//
// Ordering is descending by total points, then exact-score hits, then outcome
// hits. The sort is stable: users with identical triples keep their input
// order. When a round scope is given, users with nothing counted in that
// round are dropped from the result.
func CalcularRanking(profiles []Profile, palpites []Palpite, jogos []Jogo, rodadaID *uuid.UUID) []RankingEntry {
	jogosPorID := make(map[uuid.UUID]*Jogo, len(jogos))
	for i := range jogos {
		jogosPorID[jogos[i].ID] = &jogos[i]
	}

	entries := make([]RankingEntry, 0, len(profiles))
	porUsuario := make(map[uuid.UUID]*RankingEntry, len(profiles))
	for _, p := range profiles {
		entries = append(entries, RankingEntry{
			UserID:    p.ID,
			Nickname:  p.Nickname,
			Nome:      p.Nome,
			AvatarURL: p.AvatarURL,
		})
		porUsuario[p.ID] = &entries[len(entries)-1]
	}

	for i := range palpites {
		palpite := &palpites[i]

		jogo, ok := jogosPorID[palpite.JogoID]
		if !ok {
			continue
		}
		if rodadaID != nil && jogo.RodadaID != *rodadaID {
			continue
		}
		if !jogo.TemResultado() {
			continue
		}

		entry, ok := porUsuario[palpite.UsuarioID]
		if !ok {
			continue
		}

		entry.TotalJogos++

		pontos := palpite.PontosObtidos
		if pontos == nil {
			if calculado, err := PontuarPalpite(palpite, jogo); err == nil {
				pontos = &calculado
			}
		}
		if pontos == nil {
			continue
		}

		entry.TotalPontos += *pontos
		if *pontos >= PontosResultadoCerto {
			entry.TotalAcertosResultado++
		}
		if *pontos == PontosPlacarExato {
			entry.TotalAcertosPlacar++
		}
	}

	if rodadaID != nil {
		comAtividade := entries[:0]
		for _, e := range entries {
			if e.TotalJogos > 0 {
				comAtividade = append(comAtividade, e)
			}
		}
		entries = comAtividade
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPontos != entries[j].TotalPontos {
			return entries[i].TotalPontos > entries[j].TotalPontos
		}
		if entries[i].TotalAcertosPlacar != entries[j].TotalAcertosPlacar {
			return entries[i].TotalAcertosPlacar > entries[j].TotalAcertosPlacar
		}
		return entries[i].TotalAcertosResultado > entries[j].TotalAcertosResultado
	})

	return entries
}
