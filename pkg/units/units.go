/*
Copyright 2025 The simnorm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package units provides the physical quantities carried by simulation entities.
//
// Every quantity is stored in SI on top of gonum's unit types, so arithmetic never has
// to reason about mixed units. Documents carry an explicit unit tag ("3 eV",
// "1.5 angstrom"); decoding converts to SI and encoding writes the display unit of the
// dimension, which keeps the unit attached to the value end to end.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
	"gonum.org/v1/gonum/unit/constant"
)

var (
	// ErrUnknownUnit is returned when a unit tag is not recognised for any dimension.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDimensionMismatch is returned when a unit tag belongs to a different dimension.
	ErrDimensionMismatch = errors.New("unit dimension mismatch")
)

// Energy is an energy in joules.
type Energy unit.Energy

// Length is a length in metres.
type Length unit.Length

// Angle is a plane angle in radians.
type Angle unit.Angle

// Volume is a volume in cubic metres.
type Volume unit.Volume

const (
	Joule             Energy = 1
	ElectronVolt      Energy = Energy(constant.ElementaryCharge)
	MilliElectronVolt Energy = ElectronVolt * unit.Milli
	Hartree           Energy = 4.3597447222060e-18
	Rydberg           Energy = Hartree / 2

	Metre     Length = 1
	Nanometre Length = unit.Nano
	Picometre Length = unit.Pico
	Angstrom  Length = 1e-10
	Bohr      Length = 5.29177210544e-11

	Radian Angle = 1
	Degree Angle = math.Pi / 180

	CubicMetre     Volume = 1
	CubicNanometre Volume = 1e-27
	CubicAngstrom  Volume = 1e-30
)

var (
	energyUnits = map[string]Energy{
		"J": Joule, "joule": Joule,
		"eV": ElectronVolt, "electron_volt": ElectronVolt,
		"meV": MilliElectronVolt,
		"Ha": Hartree, "hartree": Hartree,
		"Ry": Rydberg, "rydberg": Rydberg,
	}
	lengthUnits = map[string]Length{
		"m": Metre, "meter": Metre, "metre": Metre,
		"nm": Nanometre, "nanometer": Nanometre,
		"pm": Picometre, "picometer": Picometre,
		"angstrom": Angstrom, "Å": Angstrom, "AA": Angstrom,
		"bohr": Bohr, "a0": Bohr,
	}
	angleUnits = map[string]Angle{
		"rad": Radian, "radian": Radian,
		"deg": Degree, "degree": Degree, "°": Degree,
	}
	volumeUnits = map[string]Volume{
		"m^3": CubicMetre, "m**3": CubicMetre,
		"nm^3": CubicNanometre, "nm**3": CubicNanometre,
		"angstrom^3": CubicAngstrom, "angstrom**3": CubicAngstrom, "Å^3": CubicAngstrom,
	}
)

// Unit implements unit.Uniter.
func (e Energy) Unit() *unit.Unit { return unit.Energy(e).Unit() }

// In returns the magnitude of e expressed in u.
func (e Energy) In(u Energy) float64 { return float64(e / u) }

func (e Energy) String() string { return format(e.In(ElectronVolt), "eV") }

func (e Energy) MarshalJSON() ([]byte, error) { return quote(e.String()), nil }

func (e *Energy) UnmarshalJSON(data []byte) error {
	v, err := decode(data, "energy", func(name string) (float64, bool) {
		u, ok := energyUnits[name]
		return float64(u), ok
	})
	if err != nil {
		return err
	}
	*e = Energy(v)
	return nil
}

// Unit implements unit.Uniter.
func (l Length) Unit() *unit.Unit { return unit.Length(l).Unit() }

// In returns the magnitude of l expressed in u.
func (l Length) In(u Length) float64 { return float64(l / u) }

func (l Length) String() string { return format(l.In(Angstrom), "angstrom") }

func (l Length) MarshalJSON() ([]byte, error) { return quote(l.String()), nil }

func (l *Length) UnmarshalJSON(data []byte) error {
	v, err := decode(data, "length", func(name string) (float64, bool) {
		u, ok := lengthUnits[name]
		return float64(u), ok
	})
	if err != nil {
		return err
	}
	*l = Length(v)
	return nil
}

// Unit implements unit.Uniter.
func (a Angle) Unit() *unit.Unit { return unit.Angle(a).Unit() }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return float64(a / Degree) }

func (a Angle) String() string { return format(a.Degrees(), "degree") }

func (a Angle) MarshalJSON() ([]byte, error) { return quote(a.String()), nil }

func (a *Angle) UnmarshalJSON(data []byte) error {
	v, err := decode(data, "angle", func(name string) (float64, bool) {
		u, ok := angleUnits[name]
		return float64(u), ok
	})
	if err != nil {
		return err
	}
	*a = Angle(v)
	return nil
}

// Unit implements unit.Uniter.
func (v Volume) Unit() *unit.Unit { return unit.Volume(v).Unit() }

// In returns the magnitude of v expressed in u.
func (v Volume) In(u Volume) float64 { return float64(v / u) }

func (v Volume) String() string { return format(v.In(CubicAngstrom), "angstrom^3") }

func (v Volume) MarshalJSON() ([]byte, error) { return quote(v.String()), nil }

func (v *Volume) UnmarshalJSON(data []byte) error {
	f, err := decode(data, "volume", func(name string) (float64, bool) {
		u, ok := volumeUnits[name]
		return float64(u), ok
	})
	if err != nil {
		return err
	}
	*v = Volume(f)
	return nil
}

// LookupLength returns the length unit registered under name.
func LookupLength(name string) (Length, error) {
	if name == "" {
		return Metre, nil
	}
	if u, ok := lengthUnits[name]; ok {
		return u, nil
	}
	return 0, unknown(name, "length")
}

// format keeps 15 significant digits so unit conversion noise does not leak into documents.
func format(v float64, name string) string {
	return strconv.FormatFloat(v, 'g', 15, 64) + " " + name
}

func quote(s string) []byte {
	return []byte(strconv.Quote(s))
}

// decode reads either a bare JSON number (SI) or a "<magnitude> <unit>" string.
func decode(data []byte, dimension string, lookup func(string) (float64, bool)) (float64, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return 0, fmt.Errorf("empty %s quantity", dimension)
	}
	if !strings.HasPrefix(raw, `"`) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s %s: %w", dimension, raw, err)
		}
		return v, nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %s: %w", dimension, raw, err)
	}
	return Parse(s, dimension, lookup)
}

// Parse converts "<magnitude> [unit]" into SI using lookup for the unit factor.
func Parse(s, dimension string, lookup func(string) (float64, bool)) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("malformed %s quantity %q", dimension, s)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s magnitude %q: %w", dimension, fields[0], err)
	}
	if len(fields) == 1 {
		return v, nil
	}
	factor, ok := lookup(fields[1])
	if !ok {
		return 0, unknown(fields[1], dimension)
	}
	return v * factor, nil
}

func unknown(name, dimension string) error {
	_, isEnergy := energyUnits[name]
	_, isLength := lengthUnits[name]
	_, isAngle := angleUnits[name]
	_, isVolume := volumeUnits[name]
	if isEnergy || isLength || isAngle || isVolume {
		return fmt.Errorf("%w: %q is not a %s unit", ErrDimensionMismatch, name, dimension)
	}
	return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}
