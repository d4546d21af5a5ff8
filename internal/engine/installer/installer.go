// Package installer executes an install plan across a bounded worker pool.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Installer applies install plans through a source backend. Each worker owns
// exactly one package's operation and directory for its duration; packages
// are independent, so no locking is needed beyond the pool's scheduling.
type Installer struct {
	source    ports.Source
	hooks     ports.HookRunner
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates an Installer with the given dependencies.
func New(source ports.Source, hooks ports.HookRunner, telemetry ports.Telemetry, logger ports.Logger) *Installer {
	return &Installer{
		source:    source,
		hooks:     hooks,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Apply executes every operation of the plan against packagesRoot and returns
// a report with exactly one result per operation. Package-level failures are
// recorded and never cancel sibling operations; once started, the whole plan
// runs to completion. Committing the resulting generation is the caller's
// decision based on the report.
func (ins *Installer) Apply(
	ctx context.Context,
	plan domain.InstallPlan,
	packagesRoot string,
	parallelism int,
) domain.InstallReport {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	results := make(chan domain.InstallResult, len(plan.Operations))

	// A plain errgroup, not WithContext: a failed package must not cancel
	// its siblings. Workers report through the channel, never as errors.
	var g errgroup.Group
	g.SetLimit(parallelism)

	for _, op := range plan.Operations {
		g.Go(func() error {
			results <- ins.execute(ctx, op, packagesRoot)
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	report := domain.InstallReport{Results: make([]domain.InstallResult, 0, len(plan.Operations))}
	for res := range results {
		report.Results = append(report.Results, res)
	}
	return report
}

func (ins *Installer) execute(ctx context.Context, op domain.Operation, packagesRoot string) domain.InstallResult {
	dest := filepath.Join(packagesRoot, domain.InstallDirName(op.Name))

	switch op.Kind {
	case domain.OpNoop:
		_, vtx := ins.telemetry.Record(ctx, op.Name)
		vtx.Cached()
		return domain.InstallResult{Name: op.Name, Kind: op.Kind, Outcome: domain.OutcomeUnchanged}
	case domain.OpAdd:
		return ins.add(ctx, op, packagesRoot, dest)
	case domain.OpUpdate:
		return ins.update(ctx, op, dest)
	case domain.OpRemove:
		return ins.remove(ctx, op, dest)
	default:
		return domain.InstallResult{
			Name:    op.Name,
			Kind:    op.Kind,
			Outcome: domain.OutcomeFailed,
			Err:     zerr.New(fmt.Sprintf("unknown operation kind %q", op.Kind)),
		}
	}
}

func (ins *Installer) add(ctx context.Context, op domain.Operation, packagesRoot, dest string) domain.InstallResult {
	ctx, vtx := ins.telemetry.Record(ctx, op.Name)

	err := ins.install(ctx, *op.New, packagesRoot, dest, vtx)
	vtx.Complete(err)
	if err != nil {
		return failed(op, err)
	}

	ins.logger.Info("installed " + op.Name)
	return domain.InstallResult{Name: op.Name, Kind: op.Kind, Outcome: domain.OutcomeInstalled}
}

func (ins *Installer) update(ctx context.Context, op domain.Operation, dest string) domain.InstallResult {
	ctx, vtx := ins.telemetry.Record(ctx, op.Name)

	err := ins.checkout(ctx, op, dest, vtx)
	vtx.Complete(err)
	if err != nil {
		return failed(op, err)
	}

	ins.logger.Info("updated " + op.Name)
	return domain.InstallResult{Name: op.Name, Kind: op.Kind, Outcome: domain.OutcomeUpdated}
}

func (ins *Installer) checkout(ctx context.Context, op domain.Operation, dest string, vtx ports.Vertex) error {
	// A changed source means an unrelated repository: the old clone cannot
	// be fast-forwarded into it, so replace it wholesale.
	if op.Old != nil && op.Old.Source != op.New.Source {
		if err := ins.source.Remove(dest); err != nil {
			return err
		}
		return ins.install(ctx, *op.New, filepath.Dir(dest), dest, vtx)
	}

	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return ins.install(ctx, *op.New, filepath.Dir(dest), dest, vtx)
	}

	if err := ins.source.Checkout(ctx, dest, op.New.PinnedCommit); err != nil {
		return err
	}
	return ins.runHook(ctx, *op.New, dest, vtx)
}

func (ins *Installer) install(ctx context.Context, spec domain.PackageSpec, packagesRoot, dest string, vtx ports.Vertex) error {
	if err := os.MkdirAll(packagesRoot, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrFilesystem.Error())
	}
	if err := ins.source.Clone(ctx, spec, dest); err != nil {
		return err
	}
	return ins.runHook(ctx, spec, dest, vtx)
}

func (ins *Installer) runHook(ctx context.Context, spec domain.PackageSpec, dest string, vtx ports.Vertex) error {
	if spec.Build == "" {
		return nil
	}
	if err := ins.hooks.Run(ctx, dest, spec.Build, vtx.Stdout()); err != nil {
		return zerr.Wrap(err, domain.ErrHookFailed.Error())
	}
	return nil
}

func (ins *Installer) remove(ctx context.Context, op domain.Operation, dest string) domain.InstallResult {
	_, vtx := ins.telemetry.Record(ctx, op.Name)

	err := ins.source.Remove(dest)
	vtx.Complete(err)
	if err != nil {
		ins.logger.Error(zerr.With(err, "package", op.Name))
		return failed(op, err)
	}

	ins.logger.Info("removed " + op.Name)
	return domain.InstallResult{Name: op.Name, Kind: op.Kind, Outcome: domain.OutcomeRemoved}
}

func failed(op domain.Operation, err error) domain.InstallResult {
	return domain.InstallResult{
		Name:    op.Name,
		Kind:    op.Kind,
		Outcome: domain.OutcomeFailed,
		Err:     zerr.With(err, "package", op.Name),
	}
}
