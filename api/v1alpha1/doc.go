// Package v1alpha1 contains the simulation entities normalized by simnorm.
//
// Entities are populated by a loader (see internal/document) and then normalized once,
// leaf first: orbitals, core hole and Hubbard interactions inside each atom state, cell
// geometry, chemical formula, model system and finally the simulation root. Normalize
// never fails; problems are logged and the affected derived fields stay unset.
package v1alpha1
