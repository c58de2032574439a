package bolao

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidarPalpite(t *testing.T) {
	kickoff := time.Date(2026, 5, 20, 16, 0, 0, 0, time.UTC)
	jogo := &Jogo{
		ID:       uuid.New(),
		RodadaID: uuid.New(),
		DataJogo: kickoff,
		Status:   JogoAgendado,
	}

	sub := PalpiteSubmission{
		UsuarioID:        uuid.New(),
		JogoID:           jogo.ID,
		PalpiteCasa:      2,
		PalpiteVisitante: 1,
	}

	testCases := []struct {
		name        string
		sub         PalpiteSubmission
		jogo        Jogo
		now         time.Time
		expectedErr error
	}{
		{
			name:        "Palpite válido bem antes do jogo",
			sub:         sub,
			jogo:        *jogo,
			now:         kickoff.Add(-2 * time.Hour),
		},
		{
			name:        "Palpite casa negativo",
			sub:         PalpiteSubmission{UsuarioID: sub.UsuarioID, JogoID: jogo.ID, PalpiteCasa: -1, PalpiteVisitante: 0},
			jogo:        *jogo,
			now:         kickoff.Add(-2 * time.Hour),
			expectedErr: ErrPlacarInvalido,
		},
		{
			name:        "Palpite visitante negativo",
			sub:         PalpiteSubmission{UsuarioID: sub.UsuarioID, JogoID: jogo.ID, PalpiteCasa: 0, PalpiteVisitante: -3},
			jogo:        *jogo,
			now:         kickoff.Add(-2 * time.Hour),
			expectedErr: ErrPlacarInvalido,
		},
		{
			name:        "Placar negativo rejeitado mesmo fora da janela",
			sub:         PalpiteSubmission{UsuarioID: sub.UsuarioID, JogoID: jogo.ID, PalpiteCasa: -1, PalpiteVisitante: 0},
			jogo:        *jogo,
			now:         kickoff.Add(time.Hour),
			expectedErr: ErrPlacarInvalido,
		},
		{
			name:        "Jogo já finalizado",
			sub:         sub,
			jogo:        Jogo{ID: jogo.ID, DataJogo: kickoff, Status: JogoFinalizado},
			now:         kickoff.Add(-2 * time.Hour),
			expectedErr: ErrJogoEncerrado,
		},
		{
			name:        "Exatamente no corte",
			sub:         sub,
			jogo:        *jogo,
			now:         kickoff.Add(-CutoffPadrao),
			expectedErr: ErrPalpitesFechados,
		},
		{
			name:        "Depois do corte com status ainda agendado",
			sub:         sub,
			jogo:        *jogo,
			now:         kickoff.Add(-30 * time.Second),
			expectedErr: ErrPalpitesFechados,
		},
		{
			name:        "Um instante antes do corte",
			sub:         sub,
			jogo:        *jogo,
			now:         kickoff.Add(-CutoffPadrao - time.Second),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			normalizado, err := ValidarPalpite(tc.sub, &tc.jogo, tc.now, CutoffPadrao)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.sub.UsuarioID, normalizado.UsuarioID)
			assert.Equal(t, tc.jogo.ID, normalizado.JogoID)
			assert.Equal(t, tc.sub.PalpiteCasa, normalizado.PalpiteCasa)
			assert.Equal(t, tc.sub.PalpiteVisitante, normalizado.PalpiteVisitante)
		})
	}
}

func TestValidarPalpiteCutoffConfiguravel(t *testing.T) {
	kickoff := time.Date(2026, 5, 20, 16, 0, 0, 0, time.UTC)
	jogo := &Jogo{ID: uuid.New(), DataJogo: kickoff, Status: JogoAgendado}
	sub := PalpiteSubmission{UsuarioID: uuid.New(), JogoID: jogo.ID, PalpiteCasa: 1, PalpiteVisitante: 1}

	// With a 10 minute window, 5 minutes before kickoff is already closed.
	_, err := ValidarPalpite(sub, jogo, kickoff.Add(-5*time.Minute), 10*time.Minute)
	assert.ErrorIs(t, err, ErrPalpitesFechados)

	_, err = ValidarPalpite(sub, jogo, kickoff.Add(-11*time.Minute), 10*time.Minute)
	assert.NoError(t, err)
}
