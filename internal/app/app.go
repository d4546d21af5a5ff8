// Package app implements the application layer for pakr.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports"
	"github.com/pakrat/pakr/internal/engine/installer"
	"github.com/pakrat/pakr/internal/engine/planner"
	"go.trai.ch/zerr"
)

// App represents the main application logic: turning lockfiles and stored
// generations into install plans, applying them, and committing the result.
type App struct {
	settings  ports.SettingsLoader
	lockfiles ports.LockfileLoader
	store     ports.GenerationStore
	installer *installer.Installer
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	settings ports.SettingsLoader,
	lockfiles ports.LockfileLoader,
	store ports.GenerationStore,
	ins *installer.Installer,
	logger ports.Logger,
) *App {
	return &App{
		settings:  settings,
		lockfiles: lockfiles,
		store:     store,
		installer: ins,
		logger:    logger,
	}
}

// Install applies the lockfile at path against the active generation and,
// when every operation succeeds, commits the result as the new active
// generation. On partial failure the report is returned alongside
// ErrApplyFailed and the active pointer stays where it was.
func (a *App) Install(ctx context.Context, path string) (domain.InstallReport, error) {
	target, err := a.lockfiles.Load(path)
	if err != nil {
		return domain.InstallReport{}, err
	}

	current, err := a.activeOrEmpty()
	if err != nil {
		return domain.InstallReport{}, err
	}

	report, err := a.apply(ctx, current, target)
	if err != nil {
		return report, err
	}

	id, err := a.store.Append(target)
	if err != nil {
		return report, err
	}
	if err := a.store.SetActive(id); err != nil {
		return report, err
	}

	a.logger.Info(fmt.Sprintf("generation %d is now active", id))
	return report, nil
}

// Rollback repoints the installation at a previously committed generation.
// No resolution and, for previously fetched commits, no network access: the
// plan is computed from stored records and applied against local clones.
func (a *App) Rollback(ctx context.Context, id uint64) (domain.InstallReport, error) {
	target, err := a.store.Get(id)
	if err != nil {
		return domain.InstallReport{}, err
	}

	current, err := a.activeOrEmpty()
	if err != nil {
		return domain.InstallReport{}, err
	}

	report, err := a.apply(ctx, current, target)
	if err != nil {
		return report, err
	}

	// Rollback moves the pointer to the existing record; it never appends.
	if err := a.store.SetActive(id); err != nil {
		return report, err
	}

	a.logger.Info(fmt.Sprintf("rolled back to generation %d", id))
	return report, nil
}

// Generations returns every stored generation in ascending id order plus the
// active id, nil when no generation is active.
func (a *App) Generations() ([]domain.Lockfile, *uint64, error) {
	generations, err := a.store.List()
	if err != nil {
		return nil, nil, err
	}

	id, ok, err := a.store.ActiveID()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return generations, nil, nil
	}
	return generations, &id, nil
}

func (a *App) apply(ctx context.Context, current, target domain.Lockfile) (domain.InstallReport, error) {
	settings, err := a.settings.Load()
	if err != nil {
		return domain.InstallReport{}, err
	}

	plan := planner.Diff(current, target)
	if !plan.HasWork() {
		a.logger.Info("nothing to do")
	}

	report := a.installer.Apply(ctx, plan, domain.PackagesDir(settings.DataDir), settings.Parallelism)
	if !report.OK() {
		return report, zerr.With(domain.ErrApplyFailed, "failed", len(report.Failed()))
	}
	return report, nil
}

// activeOrEmpty returns the active generation, or an empty lockfile when
// nothing has been installed yet so a first install plans everything as adds.
func (a *App) activeOrEmpty() (domain.Lockfile, error) {
	current, err := a.store.Active()
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveGeneration) {
			return domain.Lockfile{}, nil
		}
		return domain.Lockfile{}, err
	}
	return current, nil
}
