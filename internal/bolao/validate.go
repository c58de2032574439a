package bolao

import (
	"time"

	"github.com/google/uuid"
)

// CutoffPadrao is how long before kickoff predictions freeze when no other
// window is configured.
const CutoffPadrao = time.Minute

// PalpiteSubmission is the raw input of a prediction submission, before
// validation.
type PalpiteSubmission struct {
	UsuarioID        uuid.UUID
	JogoID           uuid.UUID
	PalpiteCasa      int
	PalpiteVisitante int
}

// ValidarPalpite checks a submission against the match it targets. Rules run
// in order and the first failure wins:
//
//  1. both scores must be non-negative integers
//  2. the match must not be finished
//  3. now must be strictly before kickoff minus the cutoff window
//
// An already-existing prediction for the same (user, match) pair is not an
// error; the store upserts in place. On success the submission is returned
// normalized and ready for persistence. No side effects.
func ValidarPalpite(sub PalpiteSubmission, jogo *Jogo, now time.Time, cutoff time.Duration) (PalpiteSubmission, error) {
	if sub.PalpiteCasa < 0 || sub.PalpiteVisitante < 0 {
		return PalpiteSubmission{}, ErrPlacarInvalido
	}

	if jogo.Status == JogoFinalizado {
		return PalpiteSubmission{}, ErrJogoEncerrado
	}

	if !now.Before(jogo.FechaPalpites(cutoff)) {
		return PalpiteSubmission{}, ErrPalpitesFechados
	}

	return PalpiteSubmission{
		UsuarioID:        sub.UsuarioID,
		JogoID:           jogo.ID,
		PalpiteCasa:      sub.PalpiteCasa,
		PalpiteVisitante: sub.PalpiteVisitante,
	}, nil
}
