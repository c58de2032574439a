package bolao

import (
	"time"

	"github.com/google/uuid"
)

type Palpite struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UsuarioID     uuid.UUID `db:"usuario_id" json:"usuario_id"`
	JogoID        uuid.UUID `db:"jogo_id" json:"jogo_id"`
	PalpiteCasa   int       `db:"palpite_casa" json:"palpite_casa"`
	PalpiteVisit  int       `db:"palpite_visitante" json:"palpite_visitante"`
	PontosObtidos *int      `db:"pontos_obtidos" json:"pontos_obtidos,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
