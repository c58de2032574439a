package bolao

import (
	"time"

	"github.com/google/uuid"
)

type JogoStatus string

const (
	JogoAgendado   JogoStatus = "agendado"
	JogoAoVivo     JogoStatus = "ao_vivo"
	JogoFinalizado JogoStatus = "finalizado"
)

type Jogo struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	RodadaID      uuid.UUID  `db:"rodada_id" json:"rodada_id"`
	TimeCasa      string     `db:"time_casa" json:"time_casa"`
	TimeVisitante string     `db:"time_visitante" json:"time_visitante"`
	DataJogo      time.Time  `db:"data_jogo" json:"data_jogo"`
	PlacarCasa    *int       `db:"placar_casa" json:"placar_casa,omitempty"`
	PlacarVisit   *int       `db:"placar_visitante" json:"placar_visitante,omitempty"`
	Status        JogoStatus `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// TemResultado reports whether the final score can be trusted. Final scores
// are present if and only if the match is finished.
func (j *Jogo) TemResultado() bool {
	return j.Status == JogoFinalizado && j.PlacarCasa != nil && j.PlacarVisit != nil
}

// FechaPalpites returns the instant predictions for this match freeze.
func (j *Jogo) FechaPalpites(cutoff time.Duration) time.Time {
	return j.DataJogo.Add(-cutoff)
}
