package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
)

type RankingService struct {
	db           *sqlx.DB
	userStore    *store.UserStore
	palpiteStore *store.PalpiteStore
	jogoStore    *store.JogoStore
}

func NewRankingService(db *sqlx.DB, userStore *store.UserStore, palpiteStore *store.PalpiteStore, jogoStore *store.JogoStore) *RankingService {
	return &RankingService{db: db, userStore: userStore, palpiteStore: palpiteStore, jogoStore: jogoStore}
}

// Ranking fetches profiles, predictions and matches and folds them into
// standings. The three fetches are independent reads, not one snapshot; the
// fold skips rows the fetches disagree on. Fetch failures abort with a
// DataFetchError, but no data problem inside the rows ever does.
func (s *RankingService) Ranking(ctx context.Context, rodadaID *uuid.UUID) ([]bolao.RankingEntry, error) {
	profiles, err := s.userStore.ListProfiles(ctx)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar perfis", Err: err}
	}

	palpites, err := s.palpiteStore.ListAll(ctx)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar palpites", Err: err}
	}

	jogos, err := s.jogoStore.ListJogos(ctx)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar jogos", Err: err}
	}

	return bolao.CalcularRanking(profiles, palpites, jogos, rodadaID), nil
}

// Top returns the first entries of the global ranking, for the dashboard.
func (s *RankingService) Top(ctx context.Context, limit int) ([]bolao.RankingEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	ranking, err := s.Ranking(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}
