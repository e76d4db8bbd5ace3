package mus

// MaxTantos is the winning score: reaching it ends the game immediately.
const MaxTantos uint8 = 40

// ResultadoLance records how a completed lance was settled.
type ResultadoLance struct {
	Ganador int
	Tantos  Apuesta
}

type lanceEntry struct {
	lance     Lance
	resultado *ResultadoLance
}

// PartidaMus sequences the lances for one four-hand deal, tracking the
// running score and the currently open betting round.
type PartidaMus struct {
	manos       [4]Mano
	lances      []lanceEntry
	tantos      [2]uint8
	idxLance    int
	estadoLance *EstadoLance
}

// New builds the canonical lance list for this deal — Grande, Chica,
// (Pares if it qualifies), (Juego if it qualifies else Punto) — and opens
// the first lance's betting round.
func New(manos [4]Mano, tantosIniciales [2]uint8) *PartidaMus {
	p := &PartidaMus{
		manos:  manos,
		tantos: tantosIniciales,
	}
	p.lances = append(p.lances, lanceEntry{lance: Grande})
	p.lances = append(p.lances, lanceEntry{lance: Chica})
	if Pares.HayLance(manos) {
		p.lances = append(p.lances, lanceEntry{lance: Pares})
	}
	if Juego.HayLance(manos) {
		p.lances = append(p.lances, lanceEntry{lance: Juego})
	} else {
		p.lances = append(p.lances, lanceEntry{lance: Punto})
	}
	p.idxLance = 0
	p.crearEstadoLance()
	return p
}

// NewPartidaLance builds a single-lance training deal: it returns nil if
// the lance does not qualify for this deal (used by the solver to restrict
// CFR training to one lance at a time).
func NewPartidaLance(lance Lance, manos [4]Mano, tantosIniciales [2]uint8) *PartidaMus {
	if !lance.SeJuega(manos) {
		return nil
	}
	p := &PartidaMus{
		manos:    manos,
		tantos:   tantosIniciales,
		lances:   []lanceEntry{{lance: lance}},
		idxLance: 0,
	}
	p.crearEstadoLance()
	return p
}

func (p *PartidaMus) crearEstadoLance() {
	if p.idxLance >= len(p.lances) {
		p.estadoLance = nil
		return
	}
	lance := p.lances[p.idxLance].lance
	maxRestante0 := MaxTantos - p.tantos[0]
	maxRestante1 := MaxTantos - p.tantos[1]
	maxima := maxRestante0
	if maxRestante1 > maxima {
		maxima = maxRestante1
	}
	turnoInicial := lance.TurnoInicial(p.manos)
	// TurnoInicial names a seat in {0,1,2,3} for the symmetry-break case;
	// betting turn is per-partnership, so fold the seat down to its side.
	turnoInicial %= 2
	p.estadoLance = NewEstadoLance(lance.ApuestaMinima(), maxima, turnoInicial)
	if !lance.SeJuega(p.manos) {
		// Only one partnership holds a qualifying Pares/Juego hand: that
		// side wins the jugada outright and there is nothing to bet on.
		p.estadoLance.ResolverLance(p.manos, lance)
	}
}

// Lances returns the canonical per-deal lance list; the settled results are
// not included.
func (p *PartidaMus) Lances() []Lance {
	out := make([]Lance, len(p.lances))
	for i, e := range p.lances {
		out[i] = e.lance
	}
	return out
}

// Manos returns the four dealt hands.
func (p *PartidaMus) Manos() [4]Mano {
	return p.manos
}

// Tantos returns the running score.
func (p *PartidaMus) Tantos() [2]uint8 {
	return p.tantos
}

// LanceActual returns the lance currently being bet on, or (_, false) if
// the game has ended.
func (p *PartidaMus) LanceActual() (Lance, bool) {
	if p.idxLance >= len(p.lances) || p.estadoLance == nil {
		return 0, false
	}
	return p.lances[p.idxLance].lance, true
}

// EstadoLanceActual exposes the current betting round, or nil if the game ended.
func (p *PartidaMus) EstadoLanceActual() *EstadoLance {
	return p.estadoLance
}

// Turno returns the partnership to act, or nil if the game has ended.
func (p *PartidaMus) Turno() *int {
	if p.estadoLance == nil {
		return nil
	}
	return p.estadoLance.Turno()
}

// Terminada reports whether the game has ended (40-point cap reached, or
// every lance tallied).
func (p *PartidaMus) Terminada() bool {
	return p.estadoLance == nil && p.idxLance >= len(p.lances)
}

// Actuar applies an action for the current turn, advancing through the
// lance sequence — tallying envite results immediately, deferring per-hand
// bonuses to canonical-order final settlement, and auto-skipping lances
// whose betting round resolves with no live turn (e.g. Punto when nobody
// has to decide anything).
func (p *PartidaMus) Actuar(a Accion) error {
	if p.estadoLance == nil {
		return &AccionNoValidaError{Reason: "la partida ha terminado"}
	}
	turnoAntes := p.estadoLance.Turno()
	_, err := p.estadoLance.Actuar(a)
	if err != nil {
		return err
	}
	if p.estadoLance.Turno() != nil {
		return nil
	}
	_ = turnoAntes

	p.tallarLanceActual()

	for {
		p.idxLance++
		if p.idxLance >= len(p.lances) {
			p.estadoLance = nil
			p.tanteoFinal()
			return nil
		}
		p.crearEstadoLance()
		if p.Terminada() {
			return nil
		}
		if p.estadoLance.Turno() != nil {
			return nil
		}
		// This lance's EstadoLance already closed (e.g. Punto has no
		// betting at all): tally it and keep advancing.
		p.tallarLanceActual()
	}
}

// tallarLanceActual settles the currently indexed lance's betting result:
// it resolves the winner if needed, records the ResultadoLance, and applies
// the stake from TantosApostados immediately, whether it was accepted,
// forfeited by a fold, or the lance's minimum after a pass (the per-hand
// jugada bonus is deferred to tanteoFinal, in canonical lance order).
func (p *PartidaMus) tallarLanceActual() {
	lance := p.lances[p.idxLance].lance
	p.estadoLance.ResolverLance(p.manos, lance)
	ganador := *p.estadoLance.Ganador()
	stake := p.estadoLance.TantosApostados()

	p.lances[p.idxLance].resultado = &ResultadoLance{Ganador: ganador, Tantos: stake}

	if p.estadoLance.SeQuieren() || !p.bothActive() {
		p.anotarApuesta(ganador, stake)
	}
}

func (p *PartidaMus) bothActive() bool {
	act := p.estadoLance.Activos()
	return act[0] && act[1]
}

func (p *PartidaMus) anotarApuesta(ganador int, stake Apuesta) {
	var cantidad uint8
	if stake.Tipo == ApuestaOrdago {
		cantidad = MaxTantos
	} else {
		cantidad = stake.Tantos
	}
	p.anotarTantos(ganador, cantidad)
}

// anotarTantos adds n tantos to ganador's score, capping at MaxTantos and
// zeroing the opponent and ending the game if the cap is reached.
func (p *PartidaMus) anotarTantos(ganador int, n uint8) {
	if p.tantos[ganador] >= MaxTantos {
		return
	}
	nuevo := p.tantos[ganador] + n
	if nuevo >= MaxTantos {
		p.tantos[ganador] = MaxTantos
		p.tantos[1-ganador] = 0
		p.estadoLance = nil
		p.idxLance = len(p.lances)
		return
	}
	p.tantos[ganador] = nuevo
}

// tanteoFinal sums the postponed per-lance jugada bonuses (TantosMano +
// Bonus) in canonical lance order once every lance has tallied its
// envite, checking the 40-point cap after each addition.
func (p *PartidaMus) tanteoFinal() {
	for i := range p.lances {
		if p.tantos[0] >= MaxTantos || p.tantos[1] >= MaxTantos {
			return
		}
		entry := p.lances[i]
		if entry.resultado == nil {
			continue
		}
		ganador := entry.resultado.Ganador
		companero := ganador + 2
		bono := entry.lance.TantosMano(p.manos[ganador]) + entry.lance.TantosMano(p.manos[companero]) + entry.lance.Bonus()
		if bono > 0 {
			p.anotarTantos(ganador, bono)
		}
	}
}
