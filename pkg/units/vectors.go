package units

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vectors is an ordered sequence of 3-vectors sharing one length unit, such as atomic
// positions or the rows of a lattice matrix. Magnitudes are kept in the unit they were
// supplied in; Vecs converts to SI on demand.
type Vectors struct {
	// Unit is a length unit name; empty means metres.
	Unit string `json:"unit,omitempty"`
	// Values holds one [x, y, z] triple per vector, expressed in Unit.
	Values [][3]float64 `json:"values,omitempty"`
}

// NewVectors builds Vectors expressed in the named length unit.
func NewVectors(unitName string, values ...[3]float64) Vectors {
	return Vectors{Unit: unitName, Values: values}
}

// Len returns the number of vectors.
func (v Vectors) Len() int { return len(v.Values) }

// Empty reports whether no vector is present.
func (v Vectors) Empty() bool { return len(v.Values) == 0 }

// Vecs returns the vectors in metres.
func (v Vectors) Vecs() ([]r3.Vec, error) {
	scale, err := LookupLength(v.Unit)
	if err != nil {
		return nil, err
	}
	out := make([]r3.Vec, len(v.Values))
	for i, val := range v.Values {
		out[i] = r3.Scale(float64(scale), r3.Vec{X: val[0], Y: val[1], Z: val[2]})
	}
	return out, nil
}

func (v *Vectors) UnmarshalJSON(data []byte) error {
	type plain Vectors
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if _, err := LookupLength(p.Unit); err != nil {
		return fmt.Errorf("vectors: %w", err)
	}
	*v = Vectors(p)
	return nil
}
