package quantum

// Orbital is the set of quantum numbers and symbols describing one orbital state.
// Nil pointers and empty strings mean "not supplied".
type Orbital struct {
	N  *int
	L  *int
	Ml *int
	Ms *float64
	J  []float64
	Mj []float64

	LSymbol  string
	MlSymbol string
	MsSymbol string
}

// Name selects one of the symbol-carrying quantum numbers.
type Name string

const (
	NameL  Name = "l"
	NameMl Name = "ml"
	NameMs Name = "ms"
)

// Kind selects the number or the symbol side of a quantum number.
type Kind string

const (
	KindNumber Kind = "number"
	KindSymbol Kind = "symbol"
)

var (
	lSymbols = map[int]string{0: "s", 1: "p", 2: "d", 3: "f"}
	// mlSymbols is keyed by l; only the p shell has symbolic ml labels.
	mlSymbols = map[int]map[int]string{
		1: {-1: "x", 0: "z", 1: "y"},
	}
	msSymbols = map[float64]string{-0.5: "down", 0.5: "up"}

	lNumbers  = invert(lSymbols)
	mlNumbers = map[int]map[string]int{1: invert(mlSymbols[1])}
	msNumbers = invert(msSymbols)
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// LSymbol returns the spectroscopic letter of l.
func LSymbol(l int) (string, bool) {
	s, ok := lSymbols[l]
	return s, ok
}

// LNumber returns the l number of a spectroscopic letter.
func LNumber(symbol string) (int, bool) {
	l, ok := lNumbers[symbol]
	return l, ok
}

// MlSymbol returns the real-orbital label of ml within shell l.
func MlSymbol(ml, l int) (string, bool) {
	s, ok := mlSymbols[l][ml]
	return s, ok
}

// MlNumber returns the ml number of a real-orbital label within shell l.
func MlNumber(symbol string, l int) (int, bool) {
	ml, ok := mlNumbers[l][symbol]
	return ml, ok
}

// MsSymbol returns the spin label of ms.
func MsSymbol(ms float64) (string, bool) {
	s, ok := msSymbols[ms]
	return s, ok
}

// MsNumber returns the ms number of a spin label.
func MsNumber(symbol string) (float64, bool) {
	ms, ok := msNumbers[symbol]
	return ms, ok
}

// Resolve returns the requested side of a quantum number. A value already present on o
// is returned as is; otherwise it is derived from the other side through the lookup
// tables. The result is an int (l, ml), a float64 (ms) or a string (symbols); nil means
// undefined, including for unknown names and kinds.
func Resolve(name Name, kind Kind, o Orbital) any {
	switch name {
	case NameL:
		return resolveL(kind, o)
	case NameMl:
		return resolveMl(kind, o)
	case NameMs:
		return resolveMs(kind, o)
	}
	return nil
}

func resolveL(kind Kind, o Orbital) any {
	switch kind {
	case KindNumber:
		if o.L != nil {
			return *o.L
		}
		if l, ok := LNumber(o.LSymbol); ok {
			return l
		}
	case KindSymbol:
		if o.LSymbol != "" {
			return o.LSymbol
		}
		if o.L != nil {
			if s, ok := LSymbol(*o.L); ok {
				return s
			}
		}
	}
	return nil
}

func resolveMl(kind Kind, o Orbital) any {
	l, ok := resolveL(KindNumber, o).(int)
	switch kind {
	case KindNumber:
		if o.Ml != nil {
			return *o.Ml
		}
		if !ok {
			return nil
		}
		if ml, found := MlNumber(o.MlSymbol, l); found {
			return ml
		}
	case KindSymbol:
		if o.MlSymbol != "" {
			return o.MlSymbol
		}
		if o.Ml == nil || !ok {
			return nil
		}
		if s, found := MlSymbol(*o.Ml, l); found {
			return s
		}
	}
	return nil
}

func resolveMs(kind Kind, o Orbital) any {
	switch kind {
	case KindNumber:
		if o.Ms != nil {
			return *o.Ms
		}
		if ms, ok := MsNumber(o.MsSymbol); ok {
			return ms
		}
	case KindSymbol:
		if o.MsSymbol != "" {
			return o.MsSymbol
		}
		if o.Ms != nil {
			if s, ok := MsSymbol(*o.Ms); ok {
				return s
			}
		}
	}
	return nil
}
