package domain

// OpKind classifies a single per-package operation in an install plan.
type OpKind string

const (
	// OpAdd clones a package that is only in the target generation.
	OpAdd OpKind = "add"
	// OpUpdate moves an existing package to a different source or commit.
	OpUpdate OpKind = "update"
	// OpRemove deletes a package that is only in the current generation.
	OpRemove OpKind = "remove"
	// OpNoop leaves an unchanged package alone.
	OpNoop OpKind = "noop"
)

// Operation is one per-package step of an install plan. Old is set for
// Update, Remove and Noop; New is set for Add, Update and Noop.
type Operation struct {
	Kind OpKind
	Name string
	Old  *PackageSpec
	New  *PackageSpec
}

// InstallPlan is the ordered diff between two generations: exactly one
// operation per package name present in either generation, grouped by kind
// and sorted by name within each group.
type InstallPlan struct {
	Operations []Operation
}

// HasWork reports whether the plan contains anything other than noops.
func (p InstallPlan) HasWork() bool {
	for _, op := range p.Operations {
		if op.Kind != OpNoop {
			return true
		}
	}
	return false
}

// Counts returns the number of operations per kind.
func (p InstallPlan) Counts() map[OpKind]int {
	counts := make(map[OpKind]int, 4)
	for _, op := range p.Operations {
		counts[op.Kind]++
	}
	return counts
}
