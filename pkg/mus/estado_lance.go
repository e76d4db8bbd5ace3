package mus

// EstadoLance is the betting-round state machine for a single lance. Only
// two parties bet — the two partnerships — even though four seats hold
// cards; Turno and Activos are indexed by partnership (0 or 1), never by
// seat.
type EstadoLance struct {
	bote          [2]Apuesta // bote[0] = previously accepted/standing stake, bote[1] = current stake on the table
	activos       [2]bool
	turno         *int // nil once the round has closed (accepted, folded, or no-bet)
	ultimoEnvite  int
	pasoPrevio    bool // true once one side has passed with no bet standing, awaiting the other side's response
	apuestaMinima uint8
	apuestaMaxima uint8
	ganador       *int
}

// NewEstadoLance seeds a fresh betting round: no stake yet, both
// partnerships active, initialTurno to act first.
func NewEstadoLance(apuestaMinima, apuestaMaxima uint8, initialTurno int) *EstadoLance {
	t := initialTurno
	return &EstadoLance{
		bote:          [2]Apuesta{NewApuestaTantos(0), NewApuestaTantos(0)},
		activos:       [2]bool{true, true},
		turno:         &t,
		apuestaMinima: apuestaMinima,
		apuestaMaxima: apuestaMaxima,
	}
}

// Turno reports the partnership to act, or nil if the round has closed.
func (e *EstadoLance) Turno() *int {
	return e.turno
}

// Ganador reports the winning partnership, or nil if undetermined.
func (e *EstadoLance) Ganador() *int {
	return e.ganador
}

// Bote returns the two-slot stake.
func (e *EstadoLance) Bote() [2]Apuesta {
	return e.bote
}

// Activos reports which partnerships remain in the round.
func (e *EstadoLance) Activos() [2]bool {
	return e.activos
}

// Actuar applies an action for the current turn. It returns the new turn
// (nil if the round just closed) or an error if no turn is open.
func (e *EstadoLance) Actuar(a Accion) (*int, error) {
	if e.turno == nil {
		return nil, &AccionNoValidaError{Reason: "no hay turno abierto en este lance"}
	}
	actor := *e.turno
	otro := 1 - actor

	switch a.Tipo {
	case AccionPaso:
		if e.bote[1].Tipo != ApuestaOrdago && e.bote[1].Tantos == 0 && e.bote[0].Tipo != ApuestaOrdago && e.bote[0].Tantos == 0 {
			if e.pasoPrevio {
				// Both sides have now passed with no bet ever standing:
				// round closes without a bet.
				e.turno = nil
			} else {
				// First pass with nothing on the table: give the other
				// side the chance to bet instead of closing outright.
				e.pasoPrevio = true
				e.turno = &otro
			}
		} else {
			// A bet stands and the current party declines it: fold.
			e.activos[actor] = false
			e.turno = nil
		}
	case AccionQuiero:
		if e.bote[1].Tipo == ApuestaTantos && e.bote[1].Tantos == 0 && e.bote[0].Tipo == ApuestaTantos && e.bote[0].Tantos == 0 {
			return nil, &AccionNoValidaError{Reason: "no hay envite que querer"}
		}
		e.turno = nil
	case AccionEnvido:
		if e.alcanzadoElTope() {
			return nil, &AccionNoValidaError{Reason: "no se puede subir por encima del tope"}
		}
		incremento := a.Envido
		if incremento < 2 {
			incremento = 2
		}
		nuevo := e.bote[1].Tantos + incremento
		if e.bote[1].Tipo == ApuestaOrdago {
			return nil, &AccionNoValidaError{Reason: "no se puede subir un ordago con un envite"}
		}
		if nuevo > e.apuestaMaxima {
			nuevo = e.apuestaMaxima
		}
		e.bote[0] = e.bote[1]
		e.bote[1] = NewApuestaTantos(nuevo)
		e.ultimoEnvite = actor
		e.turno = &otro
	case AccionOrdago:
		if e.alcanzadoElTope() {
			return nil, &AccionNoValidaError{Reason: "no se puede subir por encima del tope"}
		}
		e.bote[0] = e.bote[1]
		e.bote[1] = Ordago
		e.ultimoEnvite = actor
		e.turno = &otro
	default:
		return nil, &AccionNoValidaError{Reason: "accion desconocida"}
	}

	if e.turno == nil {
		if !e.activos[0] {
			g := 1
			e.ganador = &g
		} else if !e.activos[1] {
			g := 0
			e.ganador = &g
		}
	}
	return e.turno, nil
}

func (e *EstadoLance) alcanzadoElTope() bool {
	return e.bote[1].Tipo == ApuestaOrdago || (e.bote[1].Tipo == ApuestaTantos && e.bote[1].Tantos >= e.apuestaMaxima)
}

// SeQuieren reports whether the round closed with both partnerships
// active and no open turn: the pending stake was accepted.
func (e *EstadoLance) SeQuieren() bool {
	return e.turno == nil && e.activos[0] && e.activos[1]
}

// TantosApostados returns the stake actually in play once the round has
// closed: the accepted stake if quiero'd; the one-tanto penalty for a
// raise that was rejected outright (bote[0] still zero, bote[1] not); the
// previous standing stake bote[0] when a re-raise was rejected; and the
// lance's minimum forced bet whenever that computation yields zero.
func (e *EstadoLance) TantosApostados() Apuesta {
	var resultado Apuesta
	switch {
	case e.SeQuieren():
		resultado = e.bote[1]
	case e.bote[0].Tipo == ApuestaTantos && e.bote[0].Tantos == 0 &&
		!(e.bote[1].Tipo == ApuestaTantos && e.bote[1].Tantos == 0):
		resultado = NewApuestaTantos(1)
	default:
		resultado = e.bote[0]
	}
	if resultado.Tipo == ApuestaTantos && resultado.Tantos == 0 {
		resultado = NewApuestaTantos(e.apuestaMinima)
	}
	return resultado
}

// ResolverLance closes the round (clearing Turno unconditionally, even if
// it was still open — the gate used by crearEstadoLance to auto-resolve a
// lance nobody gets to bet on relies on this) and sets Ganador from the
// hand comparator if it is not already set (e.g. by a fold). Idempotent.
func (e *EstadoLance) ResolverLance(manos [4]Mano, lance Lance) {
	e.turno = nil
	if e.ganador != nil {
		return
	}
	mejor := lance.MejorMano(manos)
	g := mejor % 2
	e.ganador = &g
}

// Tantos computes the payoff vector for this lance once the round has
// closed: the accepted/forfeit stake plus TantosMano for both of the winning
// partnership's hands, plus the lance's Bonus. An Ordago stake pays
// 40 outright. Returns false if the round has not closed.
func (e *EstadoLance) Tantos(manos [4]Mano, lance Lance) ([2]uint8, bool) {
	if e.turno != nil {
		return [2]uint8{}, false
	}
	e.ResolverLance(manos, lance)
	g := *e.ganador

	apostado := e.TantosApostados()
	var base uint8
	if apostado.Tipo == ApuestaOrdago {
		base = 40
	} else {
		base = apostado.Tantos
	}

	companero := g + 2
	bonoJugadas := lance.TantosMano(manos[g]) + lance.TantosMano(manos[companero])

	var tantos [2]uint8
	tantos[g] = base + bonoJugadas + lance.Bonus()
	return tantos, true
}
