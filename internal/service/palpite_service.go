package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
)

type PalpiteService struct {
	db           *sqlx.DB
	palpiteStore *store.PalpiteStore
	jogoStore    *store.JogoStore
	userStore    *store.UserStore
	cutoff       time.Duration
}

func NewPalpiteService(db *sqlx.DB, palpiteStore *store.PalpiteStore, jogoStore *store.JogoStore, userStore *store.UserStore, cutoff time.Duration) *PalpiteService {
	if cutoff <= 0 {
		cutoff = bolao.CutoffPadrao
	}
	return &PalpiteService{db: db, palpiteStore: palpiteStore, jogoStore: jogoStore, userStore: userStore, cutoff: cutoff}
}

// SubmeterPalpite validates one submission against its match and upserts it.
// A resubmission for the same match overwrites the previous scores.
func (s *PalpiteService) SubmeterPalpite(ctx context.Context, sub bolao.PalpiteSubmission) (*bolao.Palpite, error) {
	jogo, err := s.jogoStore.GetJogo(ctx, sub.JogoID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &bolao.DataFetchError{Op: "buscar jogo", Err: err}
	}

	normalizado, err := bolao.ValidarPalpite(sub, jogo, time.Now(), s.cutoff)
	if err != nil {
		return nil, err
	}

	return s.palpiteStore.Upsert(ctx, normalizado)
}

type LoteItem struct {
	JogoID           uuid.UUID
	PalpiteCasa      int
	PalpiteVisitante int
}

// SubmeterLote validates and upserts a batch of submissions for one user.
// Rows that fail validation or persistence do not block the rest; they come
// back inside a PartialBatchWriteError together with whatever was saved.
func (s *PalpiteService) SubmeterLote(ctx context.Context, usuarioID uuid.UUID, itens []LoteItem) ([]bolao.Palpite, error) {
	now := time.Now()

	var validos []bolao.PalpiteSubmission
	var falhas []bolao.FalhaLote

	for _, item := range itens {
		sub := bolao.PalpiteSubmission{
			UsuarioID:        usuarioID,
			JogoID:           item.JogoID,
			PalpiteCasa:      item.PalpiteCasa,
			PalpiteVisitante: item.PalpiteVisitante,
		}

		jogo, err := s.jogoStore.GetJogo(ctx, item.JogoID.String())
		if err != nil {
			falhas = append(falhas, bolao.FalhaLote{JogoID: item.JogoID, Err: fmt.Errorf("jogo não encontrado: %w", err)})
			continue
		}

		normalizado, err := bolao.ValidarPalpite(sub, jogo, now, s.cutoff)
		if err != nil {
			falhas = append(falhas, bolao.FalhaLote{JogoID: item.JogoID, Err: err})
			continue
		}

		validos = append(validos, normalizado)
	}

	salvos, err := s.palpiteStore.UpsertMany(ctx, validos)

	var parcial *bolao.PartialBatchWriteError
	if errors.As(err, &parcial) {
		falhas = append(falhas, parcial.Falhas...)
	} else if err != nil {
		return salvos, err
	}

	if len(falhas) > 0 {
		return salvos, &bolao.PartialBatchWriteError{Falhas: falhas}
	}
	return salvos, nil
}

// PalpiteComJogo pairs a prediction with its match for display.
type PalpiteComJogo struct {
	bolao.Palpite
	Jogo *bolao.Jogo `json:"jogo,omitempty"`
}

func (s *PalpiteService) MeusPalpites(ctx context.Context, usuarioID uuid.UUID, rodadaID *uuid.UUID) ([]PalpiteComJogo, error) {
	palpites, err := s.palpiteStore.ByUsuario(ctx, usuarioID, rodadaID)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar palpites", Err: err}
	}

	var jogos []bolao.Jogo
	if rodadaID != nil {
		jogos, err = s.jogoStore.ListJogosByRodada(ctx, rodadaID.String())
	} else {
		jogos, err = s.jogoStore.ListJogos(ctx)
	}
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar jogos", Err: err}
	}

	jogosPorID := make(map[uuid.UUID]*bolao.Jogo, len(jogos))
	for i := range jogos {
		jogosPorID[jogos[i].ID] = &jogos[i]
	}

	resultado := make([]PalpiteComJogo, 0, len(palpites))
	for _, p := range palpites {
		resultado = append(resultado, PalpiteComJogo{Palpite: p, Jogo: jogosPorID[p.JogoID]})
	}
	return resultado, nil
}

// PalpiteComAutor pairs a prediction with its predictor's profile.
type PalpiteComAutor struct {
	bolao.Palpite
	Autor *bolao.Profile `json:"autor,omitempty"`
}

// PalpitesDoJogo lists every prediction on a match with predictor profiles.
// Profiles come from a separate fetch; a prediction whose profile is missing
// is returned without one rather than dropped.
func (s *PalpiteService) PalpitesDoJogo(ctx context.Context, jogoID uuid.UUID) ([]PalpiteComAutor, error) {
	palpites, err := s.palpiteStore.ByJogo(ctx, jogoID)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar palpites do jogo", Err: err}
	}

	profiles, err := s.userStore.ListProfiles(ctx)
	if err != nil {
		return nil, &bolao.DataFetchError{Op: "buscar perfis", Err: err}
	}

	porID := make(map[uuid.UUID]*bolao.Profile, len(profiles))
	for i := range profiles {
		porID[profiles[i].ID] = &profiles[i]
	}

	resultado := make([]PalpiteComAutor, 0, len(palpites))
	for _, p := range palpites {
		resultado = append(resultado, PalpiteComAutor{Palpite: p, Autor: porID[p.UsuarioID]})
	}
	return resultado, nil
}
