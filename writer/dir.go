package writer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/scaffoldkit/scaffold"
	"github.com/scaffoldkit/scaffold/logs"
)

// Dir writes a plan below a root directory.  Destination paths of
// a plan are unique so artifacts are written in parallel.
type Dir struct {
	root        string
	sources     Sources
	parallelism int
	logs        *logs.Factory
}

// NewDir creates a Dir writer rooted at root.
func NewDir(
	root    string,
	sources Sources,
	config  ...func(*Dir),
) *Dir {
	if root == "" {
		panic("root cannot be empty")
	}
	d := &Dir{
		root:        root,
		sources:     sources,
		parallelism: runtime.GOMAXPROCS(0),
		logs:        logs.Discard(),
	}
	for _, configure := range config {
		if configure != nil {
			configure(d)
		}
	}
	return d
}

// Parallelism bounds the concurrent writes.
func Parallelism(n int) func(*Dir) {
	return func(d *Dir) {
		if n > 0 {
			d.parallelism = n
		}
	}
}

// Logs assigns the logger factory.
func Logs(factory *logs.Factory) func(*Dir) {
	return func(d *Dir) {
		if factory != nil {
			d.logs = factory
		}
	}
}

func (d *Dir) Write(
	ctx  context.Context,
	plan *scaffold.ArtifactPlan,
) (*scaffold.Report, error) {
	artifacts := plan.Artifacts()
	errs      := make([]error, len(artifacts))
	slots     := make(chan struct{}, d.parallelism)
	var group multierror.Group
	for i, artifact := range artifacts {
		i, artifact := i, artifact
		group.Go(func() error {
			slots <- struct{}{}
			defer func() { <-slots }()
			if err := ctx.Err(); err != nil {
				errs[i] = &scaffold.WriteError{Path: artifact.Path, Reason: err}
			} else {
				errs[i] = d.write(artifact)
			}
			return errs[i]
		})
	}
	_ = group.Wait()
	report := scaffold.NewReport(plan, errs)
	return report, report.Err()
}

func (d *Dir) write(artifact scaffold.Artifact) error {
	logger := d.logs.Detail(d)
	data, err := d.sources.Content(artifact)
	if err != nil {
		d.logs.For(d).Error(err, "materialize failed", "path", artifact.Path)
		return err
	}
	dest := filepath.Join(d.root, filepath.FromSlash(artifact.Path))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &scaffold.WriteError{Path: artifact.Path, Reason: err}
	}
	mode := os.FileMode(0o644)
	if artifact.Executable {
		mode = 0o755
	}
	if err := os.WriteFile(dest, data, mode); err != nil {
		return &scaffold.WriteError{Path: artifact.Path, Reason: err}
	}
	if err := os.Chmod(dest, mode); err != nil {
		return &scaffold.WriteError{Path: artifact.Path, Reason: err}
	}
	logger.Info("wrote", "path", artifact.Path, "bytes", len(data))
	return nil
}
