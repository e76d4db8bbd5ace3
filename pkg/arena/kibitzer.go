package arena

import (
	"fmt"
	"io"

	"github.com/gauleng/musolver-go/pkg/mus"
)

// Kibitzer narrates a MusArena run. MusArena calls each method with the
// full context it needs (deal, seat, lance, history, result) as explicit
// arguments — it never hands a Kibitzer a live reference into its own
// state. The original trainer this module is modeled on shared one
// Rc<RefCell<History>> between the playing agent and the spectator; Go has
// no borrow checker to make that safe, and the two roles have no reason to
// actually share mutable state, so this port threads history through
// function arguments at every call instead.
type Kibitzer interface {
	OnDeal(manos [4]mus.Mano, tantos [2]uint8)
	OnLanceStart(lance mus.Lance)
	OnAction(seat int, lance mus.Lance, history []mus.Accion, action mus.Accion)
	OnLanceEnd(lance mus.Lance, resultado mus.ResultadoLance, tantos [2]uint8)
	OnGameEnd(tantos [2]uint8, ganador int)
}

// NullKibitzer discards every event; the zero value is ready to use.
type NullKibitzer struct{}

func (NullKibitzer) OnDeal([4]mus.Mano, [2]uint8)                              {}
func (NullKibitzer) OnLanceStart(mus.Lance)                                    {}
func (NullKibitzer) OnAction(int, mus.Lance, []mus.Accion, mus.Accion)         {}
func (NullKibitzer) OnLanceEnd(mus.Lance, mus.ResultadoLance, [2]uint8)        {}
func (NullKibitzer) OnGameEnd([2]uint8, int)                                   {}

// ConsoleKibitzer narrates play to out using plain fmt table/line printing,
// matching the teacher's printStrategies-style CLI output: narration is the
// actual product of the `arena` command, not a diagnostic, so it stays on
// fmt rather than the structured logger used for errors.
type ConsoleKibitzer struct {
	out io.Writer
}

// NewConsoleKibitzer builds a ConsoleKibitzer writing to out.
func NewConsoleKibitzer(out io.Writer) *ConsoleKibitzer {
	return &ConsoleKibitzer{out: out}
}

func (k *ConsoleKibitzer) OnDeal(manos [4]mus.Mano, tantos [2]uint8) {
	fmt.Fprintf(k.out, "\n=== New deal (score %d:%d) ===\n", tantos[0], tantos[1])
	for seat, m := range manos {
		fmt.Fprintf(k.out, "  seat %d: %s\n", seat, m)
	}
}

func (k *ConsoleKibitzer) OnLanceStart(lance mus.Lance) {
	fmt.Fprintf(k.out, "-- %s --\n", lance)
}

func (k *ConsoleKibitzer) OnAction(seat int, lance mus.Lance, history []mus.Accion, action mus.Accion) {
	fmt.Fprintf(k.out, "  seat %d: %s\n", seat, action.String())
}

func (k *ConsoleKibitzer) OnLanceEnd(lance mus.Lance, resultado mus.ResultadoLance, tantos [2]uint8) {
	fmt.Fprintf(k.out, "  %s won by partnership %d (%s) — score now %d:%d\n",
		lance, resultado.Ganador, resultado.Tantos, tantos[0], tantos[1])
}

func (k *ConsoleKibitzer) OnGameEnd(tantos [2]uint8, ganador int) {
	fmt.Fprintf(k.out, "\n=== Partnership %d wins %d:%d ===\n", ganador, tantos[0], tantos[1])
}
