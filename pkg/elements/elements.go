// Package elements holds the periodic table bijection between chemical symbols and
// atomic numbers.
package elements

// MaxAtomicNumber is the highest atomic number in the table.
const MaxAtomicNumber = 118

// symbols is indexed by atomic number; index 0 is unused.
var symbols = [MaxAtomicNumber + 1]string{
	"",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var numbers = func() map[string]int {
	m := make(map[string]int, MaxAtomicNumber)
	for z := 1; z <= MaxAtomicNumber; z++ {
		m[symbols[z]] = z
	}
	return m
}()

// AtomicNumber returns the atomic number of symbol. Lookup is case-sensitive.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := numbers[symbol]
	return z, ok
}

// Symbol returns the chemical symbol for atomic number z, or false when z is outside 1..118.
func Symbol(z int) (string, bool) {
	if z < 1 || z > MaxAtomicNumber {
		return "", false
	}
	return symbols[z], true
}

// IsSymbol reports whether symbol names an element.
func IsSymbol(symbol string) bool {
	_, ok := numbers[symbol]
	return ok
}
