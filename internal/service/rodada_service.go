package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/store"
)

var ErrJogoSemTimes = errors.New("jogo precisa dos dois times")

type RodadaService struct {
	db           *sqlx.DB
	jogoStore    *store.JogoStore
	palpiteStore *store.PalpiteStore
}

func NewRodadaService(db *sqlx.DB, jogoStore *store.JogoStore, palpiteStore *store.PalpiteStore) *RodadaService {
	return &RodadaService{db: db, jogoStore: jogoStore, palpiteStore: palpiteStore}
}

func (s *RodadaService) CriarRodada(ctx context.Context, numero int, dataInicio, dataFim *time.Time) (*bolao.Rodada, error) {
	rodada := &bolao.Rodada{
		ID:         uuid.New(),
		Numero:     numero,
		DataInicio: dataInicio,
		DataFim:    dataFim,
		Status:     bolao.RodadaFutura,
	}
	if err := s.jogoStore.CreateRodada(ctx, rodada); err != nil {
		return nil, err
	}
	return rodada, nil
}

func (s *RodadaService) ListRodadas(ctx context.Context) ([]bolao.Rodada, error) {
	return s.jogoStore.ListRodadas(ctx)
}

// RodadaAtual returns the round users should be predicting on, or nil when
// the season is over.
func (s *RodadaService) RodadaAtual(ctx context.Context) (*bolao.Rodada, error) {
	rodada, err := s.jogoStore.GetRodadaAtual(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rodada, err
}

type JogoInput struct {
	RodadaID      uuid.UUID
	TimeCasa      string
	TimeVisitante string
	DataJogo      time.Time
}

func (s *RodadaService) CriarJogo(ctx context.Context, input JogoInput) (*bolao.Jogo, error) {
	timeCasa := strings.TrimSpace(input.TimeCasa)
	timeVisitante := strings.TrimSpace(input.TimeVisitante)
	if timeCasa == "" || timeVisitante == "" {
		return nil, ErrJogoSemTimes
	}

	if _, err := s.jogoStore.GetRodada(ctx, input.RodadaID.String()); err != nil {
		return nil, fmt.Errorf("rodada não encontrada: %w", err)
	}

	jogo := &bolao.Jogo{
		ID:            uuid.New(),
		RodadaID:      input.RodadaID,
		TimeCasa:      timeCasa,
		TimeVisitante: timeVisitante,
		DataJogo:      input.DataJogo,
		Status:        bolao.JogoAgendado,
	}
	if err := s.jogoStore.CreateJogo(ctx, jogo); err != nil {
		return nil, err
	}
	return jogo, nil
}

func (s *RodadaService) AtualizarJogo(ctx context.Context, jogoID uuid.UUID, input JogoInput) (*bolao.Jogo, error) {
	jogo, err := s.jogoStore.GetJogo(ctx, jogoID.String())
	if err != nil {
		return nil, err
	}

	if timeCasa := strings.TrimSpace(input.TimeCasa); timeCasa != "" {
		jogo.TimeCasa = timeCasa
	}
	if timeVisitante := strings.TrimSpace(input.TimeVisitante); timeVisitante != "" {
		jogo.TimeVisitante = timeVisitante
	}
	if !input.DataJogo.IsZero() {
		jogo.DataJogo = input.DataJogo
	}
	if input.RodadaID != uuid.Nil {
		if _, err := s.jogoStore.GetRodada(ctx, input.RodadaID.String()); err != nil {
			return nil, fmt.Errorf("rodada não encontrada: %w", err)
		}
		jogo.RodadaID = input.RodadaID
	}

	if err := s.jogoStore.UpdateJogo(ctx, jogo); err != nil {
		return nil, err
	}
	return jogo, nil
}

func (s *RodadaService) JogosDaRodada(ctx context.Context, rodadaID uuid.UUID) ([]bolao.Jogo, error) {
	return s.jogoStore.ListJogosByRodada(ctx, rodadaID.String())
}

func (s *RodadaService) ProximosJogos(ctx context.Context, limit int) ([]bolao.Jogo, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.jogoStore.ListProximosJogos(ctx, time.Now(), limit)
}

// InserirResultado records the final score of a match and grades every
// prediction on it in the same transaction, so the persisted points never
// disagree with the score they were computed from.
func (s *RodadaService) InserirResultado(ctx context.Context, jogoID uuid.UUID, placarCasa, placarVisitante int) (*bolao.Jogo, error) {
	if placarCasa < 0 || placarVisitante < 0 {
		return nil, bolao.ErrPlacarInvalido
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	jogo, err := s.jogoStore.GetJogoTx(ctx, tx, jogoID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get jogo: %w", err)
	}

	jogo.PlacarCasa = &placarCasa
	jogo.PlacarVisit = &placarVisitante
	jogo.Status = bolao.JogoFinalizado

	if err := s.jogoStore.UpdateResultadoTx(ctx, tx, jogo); err != nil {
		return nil, fmt.Errorf("failed to update resultado: %w", err)
	}

	palpites, err := s.palpiteStore.ByJogoTx(ctx, tx, jogo.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get palpites: %w", err)
	}

	for i := range palpites {
		pontos, err := bolao.PontuarPalpite(&palpites[i], jogo)
		if err != nil {
			return nil, fmt.Errorf("failed to score palpite %s: %w", palpites[i].ID, err)
		}
		if err := s.palpiteStore.UpdatePontosTx(ctx, tx, palpites[i].ID, pontos); err != nil {
			return nil, fmt.Errorf("failed to update pontos: %w", err)
		}
	}

	return jogo, tx.Commit()
}
