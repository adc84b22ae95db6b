package routing

import (
	"fmt"
	"time"
)

// Method selects one solver.
type Method int

const (
	MethodFSM Method = iota
	MethodSFSM
	MethodPFSM
	MethodParallelFSM
	MethodFMM
	MethodSFMM
	MethodAFM2
	MethodMyAFM2
)

var methodNames = [...]string{"fsm", "sfsm", "pfsm", "parallel_fsm", "fmm", "sfmm", "afm2", "my_afm2"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod matches a configured method name exactly.
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Anisotropic reports whether the method starts the front at the vehicle.
func (m Method) Anisotropic() bool {
	return m == MethodAFM2 || m == MethodMyAFM2
}

// Params carries the solver parameters read from the run configuration.
type Params struct {
	LimCount int // sweep round cap
	Thresh   int // cell count from which parallel_fsm runs in parallel
	Workers  int // parallel sweep goroutines, <= 0 means NumCPU

	Heading float64 // vehicle heading, radians
	Theta   float64 // travel angle relative to heading, radians
	Radius  float64 // turning radius, cells
}

// Result reports a finished solve.
type Result struct {
	Method  Method
	Rounds  int // sweep rounds, 0 for marching methods
	Elapsed time.Duration
}

// Solve runs method m on g.
func Solve(g *GridMap, m Method, p Params, opts ...Option) (Result, error) {
	res := Result{Method: m}
	start := time.Now()
	switch m {
	case MethodFSM:
		res.Rounds = FSM(g, p.LimCount)
	case MethodSFSM:
		res.Rounds = SFSM(g, p.LimCount)
	case MethodPFSM:
		rounds, err := PFSM(g, p.LimCount, p.Workers)
		if err != nil {
			return res, err
		}
		res.Rounds = rounds
	case MethodParallelFSM:
		rounds, err := ParallelFSM(g, p.LimCount, p.Thresh, p.Workers)
		if err != nil {
			return res, err
		}
		res.Rounds = rounds
	case MethodFMM:
		FMM(g, opts...)
	case MethodSFMM:
		SFMM(g, opts...)
	case MethodAFM2:
		AFM2(g, p.Heading, p.Theta, p.Radius, opts...)
	case MethodMyAFM2:
		MyAFM2(g, p.Heading, p.Radius, opts...)
	default:
		return res, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}
