package formula

// iupacSequence is the element sequence of IUPAC Red Book (2005) Table VI used for
// ordering constituents in formulae.
var iupacSequence = []string{
	"Og", "Rn", "Xe", "Kr", "Ar", "Ne", "He",
	"Fr", "Cs", "Rb", "K", "Na", "Li",
	"Ra", "Ba", "Sr", "Ca", "Mg", "Be",
	"Lr", "No", "Md", "Fm", "Es", "Cf", "Bk", "Cm", "Am", "Pu", "Np", "U", "Pa", "Th", "Ac",
	"Lu", "Yb", "Tm", "Er", "Ho", "Dy", "Tb", "Gd", "Eu", "Sm", "Pm", "Nd", "Pr", "Ce", "La",
	"Y", "Sc",
	"Rf", "Hf", "Zr", "Ti",
	"Db", "Ta", "Nb", "V",
	"Sg", "W", "Mo", "Cr",
	"Bh", "Re", "Tc", "Mn",
	"Hs", "Os", "Ru", "Fe",
	"Mt", "Ir", "Rh", "Co",
	"Ds", "Pt", "Pd", "Ni",
	"Rg", "Au", "Ag", "Cu",
	"Cn", "Hg", "Cd", "Zn",
	"Nh", "Tl", "In", "Ga", "Al", "B",
	"Fl", "Pb", "Sn", "Ge", "Si", "C",
	"Mc", "Bi", "Sb", "As", "P", "N",
	"H",
	"Lv", "Po", "Te", "Se", "S", "O",
	"Ts", "At", "I", "Br", "Cl", "F",
}

var iupacRank = func() map[string]int {
	m := make(map[string]int, len(iupacSequence))
	for i, s := range iupacSequence {
		m[s] = i
	}
	return m
}()
