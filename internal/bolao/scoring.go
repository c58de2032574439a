package bolao

// Point bands awarded per prediction. There is no partial-score band: hitting
// the exact score always implies hitting the outcome, so only three tiers exist.
const (
	PontosPlacarExato    = 5
	PontosResultadoCerto = 3
	PontosErrado         = 0
)

type Resultado int

const (
	VitoriaCasa Resultado = iota
	Empate
	VitoriaVisitante
)

// ResultadoDoPlacar maps a score pair to its outcome category.
func ResultadoDoPlacar(casa, visitante int) Resultado {
	switch {
	case casa > visitante:
		return VitoriaCasa
	case casa < visitante:
		return VitoriaVisitante
	default:
		return Empate
	}
}

// Pontuar computes the points a prediction earns against the final score.
// Pure and total over non-negative inputs; negative values are rejected,
// never coerced.
func Pontuar(palpiteCasa, palpiteVisitante, placarCasa, placarVisitante int) (int, error) {
	if palpiteCasa < 0 || palpiteVisitante < 0 || placarCasa < 0 || placarVisitante < 0 {
		return 0, ErrPlacarInvalido
	}

	if palpiteCasa == placarCasa && palpiteVisitante == placarVisitante {
		return PontosPlacarExato, nil
	}

	if ResultadoDoPlacar(palpiteCasa, palpiteVisitante) == ResultadoDoPlacar(placarCasa, placarVisitante) {
		return PontosResultadoCerto, nil
	}

	return PontosErrado, nil
}

// PontuarPalpite scores a stored prediction against its finished match.
func PontuarPalpite(p *Palpite, j *Jogo) (int, error) {
	if !j.TemResultado() {
		return 0, ErrSemResultado
	}
	return Pontuar(p.PalpiteCasa, p.PalpiteVisit, *j.PlacarCasa, *j.PlacarVisit)
}
