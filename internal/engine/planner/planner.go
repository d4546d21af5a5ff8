// Package planner computes the ordered set of per-package operations needed
// to move from one generation to another.
package planner

import (
	"sort"

	"github.com/pakrat/pakr/internal/core/domain"
)

// Diff partitions the package names of current and target into operations:
// only-in-target becomes Add, only-in-current becomes Remove, in-both becomes
// Update when source or pinned commit differ and Noop otherwise. A source
// change alone forces an Update even when the reference string is unchanged.
//
// Operations are grouped by kind (adds, updates, removes, noops) and sorted
// lexicographically by name within each group, so the plan for a given pair
// of generations is always identical. Renames are not detected; a renamed
// package shows up as an unrelated Remove plus Add.
func Diff(current, target domain.Lockfile) domain.InstallPlan {
	var adds, updates, removes, noops []domain.Operation

	for name := range target.Packages {
		newSpec := target.Packages[name]
		oldSpec, exists := current.Packages[name]
		switch {
		case !exists:
			adds = append(adds, domain.Operation{Kind: domain.OpAdd, Name: name, New: &newSpec})
		case oldSpec.Equal(newSpec):
			noops = append(noops, domain.Operation{Kind: domain.OpNoop, Name: name, Old: &oldSpec, New: &newSpec})
		default:
			updates = append(updates, domain.Operation{Kind: domain.OpUpdate, Name: name, Old: &oldSpec, New: &newSpec})
		}
	}

	for name := range current.Packages {
		if _, exists := target.Packages[name]; exists {
			continue
		}
		oldSpec := current.Packages[name]
		removes = append(removes, domain.Operation{Kind: domain.OpRemove, Name: name, Old: &oldSpec})
	}

	byName := func(ops []domain.Operation) {
		sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	}
	byName(adds)
	byName(updates)
	byName(removes)
	byName(noops)

	ops := make([]domain.Operation, 0, len(adds)+len(updates)+len(removes)+len(noops))
	ops = append(ops, adds...)
	ops = append(ops, updates...)
	ops = append(ops, removes...)
	ops = append(ops, noops...)

	return domain.InstallPlan{Operations: ops}
}
