package bolao

import (
	"time"

	"github.com/google/uuid"
)

type RodadaStatus string

const (
	RodadaFutura      RodadaStatus = "futura"
	RodadaEmAndamento RodadaStatus = "em_andamento"
	RodadaFinalizada  RodadaStatus = "finalizada"
)

type Rodada struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	Numero     int          `db:"numero" json:"numero"`
	DataInicio *time.Time   `db:"data_inicio" json:"data_inicio,omitempty"`
	DataFim    *time.Time   `db:"data_fim" json:"data_fim,omitempty"`
	Status     RodadaStatus `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
