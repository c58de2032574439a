package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
)

type JogoStore struct {
	db *sqlx.DB
}

func NewJogoStore(db *sqlx.DB) *JogoStore {
	return &JogoStore{db: db}
}

func (s *JogoStore) CreateRodada(ctx context.Context, rodada *bolao.Rodada) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO rodadas (id, numero, data_inicio, data_fim, status)
        VALUES (:id, :numero, :data_inicio, :data_fim, :status)`, rodada)
	return err
}

func (s *JogoStore) GetRodada(ctx context.Context, id string) (*bolao.Rodada, error) {
	var rodada bolao.Rodada
	err := s.db.GetContext(ctx, &rodada, "SELECT * FROM rodadas WHERE id = ?", id)
	return &rodada, err
}

func (s *JogoStore) ListRodadas(ctx context.Context) ([]bolao.Rodada, error) {
	var rodadas []bolao.Rodada
	err := s.db.SelectContext(ctx, &rodadas, "SELECT * FROM rodadas ORDER BY numero ASC")
	return rodadas, err
}

// GetRodadaAtual picks the lowest-numbered round still open or upcoming.
func (s *JogoStore) GetRodadaAtual(ctx context.Context) (*bolao.Rodada, error) {
	var rodada bolao.Rodada
	err := s.db.GetContext(ctx, &rodada, `SELECT * FROM rodadas
        WHERE status IN ('em_andamento', 'futura')
        ORDER BY numero ASC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return &rodada, nil
}

func (s *JogoStore) CreateJogo(ctx context.Context, jogo *bolao.Jogo) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO jogos (id, rodada_id, time_casa, time_visitante, data_jogo, status)
        VALUES (:id, :rodada_id, :time_casa, :time_visitante, :data_jogo, :status)`, jogo)
	return err
}

func (s *JogoStore) GetJogo(ctx context.Context, id string) (*bolao.Jogo, error) {
	var jogo bolao.Jogo
	err := s.db.GetContext(ctx, &jogo, "SELECT * FROM jogos WHERE id = ?", id)
	return &jogo, err
}

func (s *JogoStore) GetJogoTx(ctx context.Context, tx *sqlx.Tx, id string) (*bolao.Jogo, error) {
	var jogo bolao.Jogo
	err := tx.GetContext(ctx, &jogo, "SELECT * FROM jogos WHERE id = ?", id)
	return &jogo, err
}

func (s *JogoStore) UpdateJogo(ctx context.Context, jogo *bolao.Jogo) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE jogos SET
        rodada_id = :rodada_id,
        time_casa = :time_casa,
        time_visitante = :time_visitante,
        data_jogo = :data_jogo,
        status = :status,
        updated_at = CURRENT_TIMESTAMP
        WHERE id = :id`, jogo)
	return err
}

func (s *JogoStore) UpdateResultadoTx(ctx context.Context, tx *sqlx.Tx, jogo *bolao.Jogo) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE jogos SET
        placar_casa = :placar_casa,
        placar_visitante = :placar_visitante,
        status = :status,
        updated_at = CURRENT_TIMESTAMP
        WHERE id = :id`, jogo)
	return err
}

func (s *JogoStore) ListJogosByRodada(ctx context.Context, rodadaID string) ([]bolao.Jogo, error) {
	var jogos []bolao.Jogo
	err := s.db.SelectContext(ctx, &jogos, "SELECT * FROM jogos WHERE rodada_id = ? ORDER BY data_jogo ASC", rodadaID)
	return jogos, err
}

func (s *JogoStore) ListJogos(ctx context.Context) ([]bolao.Jogo, error) {
	var jogos []bolao.Jogo
	err := s.db.SelectContext(ctx, &jogos, "SELECT * FROM jogos ORDER BY data_jogo ASC")
	return jogos, err
}

func (s *JogoStore) ListProximosJogos(ctx context.Context, now time.Time, limit int) ([]bolao.Jogo, error) {
	var jogos []bolao.Jogo
	err := s.db.SelectContext(ctx, &jogos, `SELECT * FROM jogos
        WHERE status = 'agendado' AND data_jogo >= ?
        ORDER BY data_jogo ASC LIMIT ?`, now, limit)
	return jogos, err
}
