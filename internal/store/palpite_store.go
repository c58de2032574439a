package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nathannsp9-creator/meu-palpite-brasileirao-2026/internal/bolao"
)

type PalpiteStore struct {
	db *sqlx.DB
}

func NewPalpiteStore(db *sqlx.DB) *PalpiteStore {
	return &PalpiteStore{db: db}
}

// The conflict target is the unique (usuario_id, jogo_id) pair: a second
// submission for the same match updates the existing row in place,
// last-writer-wins on the two score fields. The write is a single atomic
// statement, never read-modify-write, so concurrent submissions from two
// sessions of the same user cannot lose an update. Stored points are cleared
// because the new score has not been graded.
const upsertPalpiteQuery = `
	INSERT INTO palpites (id, usuario_id, jogo_id, palpite_casa, palpite_visitante)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (usuario_id, jogo_id) DO UPDATE SET
		palpite_casa = excluded.palpite_casa,
		palpite_visitante = excluded.palpite_visitante,
		pontos_obtidos = NULL,
		updated_at = CURRENT_TIMESTAMP
`

func (s *PalpiteStore) Upsert(ctx context.Context, sub bolao.PalpiteSubmission) (*bolao.Palpite, error) {
	_, err := s.db.ExecContext(ctx, upsertPalpiteQuery,
		uuid.New(), sub.UsuarioID, sub.JogoID, sub.PalpiteCasa, sub.PalpiteVisitante)
	if err != nil {
		return nil, err
	}
	return s.GetByUsuarioEJogo(ctx, sub.UsuarioID, sub.JogoID)
}

// UpsertMany applies the same atomic upsert row by row, outside any shared
// transaction: one rejected row must not roll back its siblings. Failures are
// collected per row and reported in a PartialBatchWriteError alongside the
// rows that did get written.
func (s *PalpiteStore) UpsertMany(ctx context.Context, subs []bolao.PalpiteSubmission) ([]bolao.Palpite, error) {
	var salvos []bolao.Palpite
	var falhas []bolao.FalhaLote

	for _, sub := range subs {
		palpite, err := s.Upsert(ctx, sub)
		if err != nil {
			falhas = append(falhas, bolao.FalhaLote{JogoID: sub.JogoID, Err: err})
			continue
		}
		salvos = append(salvos, *palpite)
	}

	if len(falhas) > 0 {
		return salvos, &bolao.PartialBatchWriteError{Falhas: falhas}
	}
	return salvos, nil
}

func (s *PalpiteStore) GetByUsuarioEJogo(ctx context.Context, usuarioID, jogoID uuid.UUID) (*bolao.Palpite, error) {
	var palpite bolao.Palpite
	err := s.db.GetContext(ctx, &palpite,
		"SELECT * FROM palpites WHERE usuario_id = ? AND jogo_id = ?", usuarioID, jogoID)
	if err != nil {
		return nil, err
	}
	return &palpite, nil
}

func (s *PalpiteStore) ByUsuario(ctx context.Context, usuarioID uuid.UUID, rodadaID *uuid.UUID) ([]bolao.Palpite, error) {
	var palpites []bolao.Palpite
	if rodadaID != nil {
		err := s.db.SelectContext(ctx, &palpites, `SELECT p.* FROM palpites p
            JOIN jogos j ON j.id = p.jogo_id
            WHERE p.usuario_id = ? AND j.rodada_id = ?
            ORDER BY j.data_jogo ASC`, usuarioID, *rodadaID)
		return palpites, err
	}
	err := s.db.SelectContext(ctx, &palpites,
		"SELECT * FROM palpites WHERE usuario_id = ? ORDER BY created_at ASC", usuarioID)
	return palpites, err
}

func (s *PalpiteStore) ByJogo(ctx context.Context, jogoID uuid.UUID) ([]bolao.Palpite, error) {
	var palpites []bolao.Palpite
	err := s.db.SelectContext(ctx, &palpites,
		"SELECT * FROM palpites WHERE jogo_id = ? ORDER BY created_at ASC", jogoID)
	return palpites, err
}

func (s *PalpiteStore) ByJogoTx(ctx context.Context, tx *sqlx.Tx, jogoID uuid.UUID) ([]bolao.Palpite, error) {
	var palpites []bolao.Palpite
	err := tx.SelectContext(ctx, &palpites, "SELECT * FROM palpites WHERE jogo_id = ?", jogoID)
	return palpites, err
}

func (s *PalpiteStore) ListAll(ctx context.Context) ([]bolao.Palpite, error) {
	var palpites []bolao.Palpite
	err := s.db.SelectContext(ctx, &palpites, "SELECT * FROM palpites ORDER BY created_at ASC")
	return palpites, err
}

func (s *PalpiteStore) UpdatePontosTx(ctx context.Context, tx *sqlx.Tx, palpiteID uuid.UUID, pontos int) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE palpites SET pontos_obtidos = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", pontos, palpiteID)
	return err
}
