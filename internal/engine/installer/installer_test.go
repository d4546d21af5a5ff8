package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pakrat/pakr/internal/adapters/telemetry"
	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports/mocks"
	"github.com/pakrat/pakr/internal/engine/installer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	c1 = strings.Repeat("1", 40)
	c2 = strings.Repeat("2", 40)
)

type fixture struct {
	source *mocks.MockSource
	hooks  *mocks.MockHookRunner
	ins    *installer.Installer
	root   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	source := mocks.NewMockSource(ctrl)
	hooks := mocks.NewMockHookRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return &fixture{
		source: source,
		hooks:  hooks,
		ins:    installer.New(source, hooks, telemetry.NewNoOp(), logger),
		root:   t.TempDir(),
	}
}

func (f *fixture) dest(name string) string {
	return filepath.Join(f.root, domain.InstallDirName(name))
}

func spec(source, commit string) *domain.PackageSpec {
	return &domain.PackageSpec{Source: source, Reference: "main", PinnedCommit: commit}
}

func outcomes(report domain.InstallReport) map[string]domain.Outcome {
	m := make(map[string]domain.Outcome, len(report.Results))
	for _, res := range report.Results {
		m[res.Name] = res.Outcome
	}
	return m
}

func TestInstaller_NoopPlanTouchesNothing(t *testing.T) {
	f := newFixture(t)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpNoop, Name: "a", Old: spec("s", c1), New: spec("s", c1)},
		{Kind: domain.OpNoop, Name: "b", Old: spec("s", c1), New: spec("s", c1)},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 2)
	require.Len(t, report.Results, 2)
	assert.True(t, report.OK())
	for _, res := range report.Results {
		assert.Equal(t, domain.OutcomeUnchanged, res.Outcome)
	}
}

func TestInstaller_Add(t *testing.T) {
	f := newFixture(t)

	newSpec := spec("https://github.com/acme/foo", c1)
	f.source.EXPECT().Clone(gomock.Any(), *newSpec, f.dest("foo")).Return(nil)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpAdd, Name: "foo", New: newSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.OutcomeInstalled, report.Results[0].Outcome)

	// The clone root is created up front so parallel clones never race on it.
	info, err := os.Stat(f.root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInstaller_AddRunsBuildHook(t *testing.T) {
	f := newFixture(t)

	newSpec := spec("https://github.com/acme/foo", c1)
	newSpec.Build = "make"

	gomock.InOrder(
		f.source.EXPECT().Clone(gomock.Any(), *newSpec, f.dest("foo")).Return(nil),
		f.hooks.EXPECT().Run(gomock.Any(), f.dest("foo"), "make", gomock.Any()).Return(nil),
	)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpAdd, Name: "foo", New: newSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	assert.Equal(t, domain.OutcomeInstalled, report.Results[0].Outcome)
}

func TestInstaller_HookFailureFailsPackage(t *testing.T) {
	f := newFixture(t)

	newSpec := spec("https://github.com/acme/foo", c1)
	newSpec.Build = "make"

	f.source.EXPECT().Clone(gomock.Any(), *newSpec, f.dest("foo")).Return(nil)
	f.hooks.EXPECT().Run(gomock.Any(), f.dest("foo"), "make", gomock.Any()).Return(domain.ErrHookFailed)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpAdd, Name: "foo", New: newSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.OutcomeFailed, report.Results[0].Outcome)
	assert.ErrorIs(t, report.Results[0].Err, domain.ErrHookFailed)
}

func TestInstaller_UpdateChecksOutExistingClone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dest("foo"), 0o750))

	f.source.EXPECT().Checkout(gomock.Any(), f.dest("foo"), c2).Return(nil)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpUpdate, Name: "foo", Old: spec("s", c1), New: spec("s", c2)},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	assert.Equal(t, domain.OutcomeUpdated, report.Results[0].Outcome)
}

func TestInstaller_UpdateWithMissingCloneReinstalls(t *testing.T) {
	f := newFixture(t)

	newSpec := spec("s", c2)
	f.source.EXPECT().Clone(gomock.Any(), *newSpec, f.dest("foo")).Return(nil)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpUpdate, Name: "foo", Old: spec("s", c1), New: newSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	assert.Equal(t, domain.OutcomeUpdated, report.Results[0].Outcome)
}

func TestInstaller_SourceChangeReplacesClone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dest("foo"), 0o750))

	newSpec := spec("https://github.com/fork/foo", c2)
	gomock.InOrder(
		f.source.EXPECT().Remove(f.dest("foo")).Return(nil),
		f.source.EXPECT().Clone(gomock.Any(), *newSpec, f.dest("foo")).Return(nil),
	)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpUpdate, Name: "foo", Old: spec("https://github.com/acme/foo", c1), New: newSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	assert.Equal(t, domain.OutcomeUpdated, report.Results[0].Outcome)
}

func TestInstaller_Remove(t *testing.T) {
	f := newFixture(t)

	f.source.EXPECT().Remove(f.dest("foo")).Return(nil)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpRemove, Name: "foo", Old: spec("s", c1)},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	assert.Equal(t, domain.OutcomeRemoved, report.Results[0].Outcome)
}

func TestInstaller_FailureDoesNotCancelSiblings(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dest("foo"), 0o750))

	barSpec := spec("https://github.com/acme/bar", c1)
	f.source.EXPECT().Checkout(gomock.Any(), f.dest("foo"), c2).Return(domain.ErrNetwork)
	f.source.EXPECT().Clone(gomock.Any(), *barSpec, f.dest("bar")).Return(nil)

	plan := domain.InstallPlan{Operations: []domain.Operation{
		{Kind: domain.OpUpdate, Name: "foo", Old: spec("s", c1), New: spec("s", c2)},
		{Kind: domain.OpAdd, Name: "bar", New: barSpec},
	}}

	report := f.ins.Apply(context.Background(), plan, f.root, 1)
	require.Len(t, report.Results, 2)
	assert.False(t, report.OK())

	got := outcomes(report)
	assert.Equal(t, domain.OutcomeFailed, got["foo"])
	assert.Equal(t, domain.OutcomeInstalled, got["bar"])

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "foo", failed[0].Name)
	assert.ErrorIs(t, failed[0].Err, domain.ErrNetwork)
}

func TestInstaller_ExactlyOneResultPerOperation(t *testing.T) {
	f := newFixture(t)

	names := []string{"a", "b", "c", "d", "e"}
	ops := make([]domain.Operation, 0, len(names))
	for _, name := range names {
		s := spec("https://github.com/acme/"+name, c1)
		f.source.EXPECT().Clone(gomock.Any(), *s, f.dest(name)).Return(nil)
		ops = append(ops, domain.Operation{Kind: domain.OpAdd, Name: name, New: s})
	}

	report := f.ins.Apply(context.Background(), plan(ops), f.root, 3)
	require.Len(t, report.Results, len(names))

	seen := make(map[string]int)
	for _, res := range report.Results {
		seen[res.Name]++
	}
	for _, name := range names {
		assert.Equal(t, 1, seen[name], name)
	}
}

func TestInstaller_ParallelismBound(t *testing.T) {
	f := newFixture(t)

	var inFlight, peak atomic.Int32
	var mu sync.Mutex

	names := []string{"a", "b", "c", "d", "e", "f"}
	ops := make([]domain.Operation, 0, len(names))
	for _, name := range names {
		s := spec("https://github.com/acme/"+name, c1)
		f.source.EXPECT().Clone(gomock.Any(), *s, f.dest(name)).DoAndReturn(
			func(context.Context, domain.PackageSpec, string) error {
				cur := inFlight.Add(1)
				mu.Lock()
				if cur > peak.Load() {
					peak.Store(cur)
				}
				mu.Unlock()
				defer inFlight.Add(-1)
				return nil
			})
		ops = append(ops, domain.Operation{Kind: domain.OpAdd, Name: name, New: s})
	}

	report := f.ins.Apply(context.Background(), plan(ops), f.root, 2)
	require.Len(t, report.Results, len(names))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func plan(ops []domain.Operation) domain.InstallPlan {
	return domain.InstallPlan{Operations: ops}
}
