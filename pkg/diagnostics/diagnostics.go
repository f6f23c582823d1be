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

// Package diagnostics defines the problems normalization can observe.
//
// Normalization never fails: resolvers log one of these sentinels (wrapped with
// context via fmt.Errorf("%w: ...")) and leave the affected derived value unset.
package diagnostics

import "errors"

var (
	// ErrOutOfRange marks a quantum number, dscf token or similar bounded field outside its domain.
	ErrOutOfRange = errors.New("value out of range")
	// ErrArityMismatch marks a list with the wrong number of entries, e.g. Slater integrals
	// or positions that do not line up with the atom states.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrMissingDependency marks a derivation whose inputs were never supplied.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInconsistentDualAttribute marks a symbol/number pair that disagree.
	ErrInconsistentDualAttribute = errors.New("inconsistent dual attribute")
)

// Kind is the taxonomy label of a diagnostic.
type Kind string

const (
	KindOutOfRange                Kind = "out_of_range"
	KindArityMismatch             Kind = "arity_mismatch"
	KindMissingDependency         Kind = "missing_dependency"
	KindInconsistentDualAttribute Kind = "inconsistent_dual_attribute"
	KindOther                     Kind = "other"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrArityMismatch):
		return KindArityMismatch
	case errors.Is(err, ErrMissingDependency):
		return KindMissingDependency
	case errors.Is(err, ErrInconsistentDualAttribute):
		return KindInconsistentDualAttribute
	default:
		return KindOther
	}
}
