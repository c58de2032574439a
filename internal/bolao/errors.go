package bolao

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrPlacarInvalido rejects negative score values anywhere in the system.
	ErrPlacarInvalido = errors.New("placar inválido: os gols devem ser inteiros não negativos")

	// ErrJogoEncerrado rejects predictions for matches that already finished.
	ErrJogoEncerrado = errors.New("jogo já encerrado, palpites não são mais aceitos")

	// ErrPalpitesFechados rejects predictions past the cutoff window.
	ErrPalpitesFechados = errors.New("janela de palpites fechada para este jogo")

	// ErrSemResultado guards scoring against matches without a final score.
	ErrSemResultado = errors.New("jogo sem resultado final")
)

// DataFetchError wraps storage failures so callers can tell a fetch problem
// apart from a business-rule rejection.
type DataFetchError struct {
	Op  string
	Err error
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("falha ao buscar dados (%s): %v", e.Op, e.Err)
}

func (e *DataFetchError) Unwrap() error { return e.Err }

// FalhaLote identifies one rejected row of a batch upsert.
type FalhaLote struct {
	JogoID uuid.UUID
	Err    error
}

// PartialBatchWriteError reports a batch upsert where some rows were written
// and others failed. The batch is not atomic; callers get the exact rows that
// did not make it.
type PartialBatchWriteError struct {
	Falhas []FalhaLote
}

func (e *PartialBatchWriteError) Error() string {
	return fmt.Sprintf("%d palpite(s) do lote falharam", len(e.Falhas))
}
