package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unionsynth/internal/analyze"
	"unionsynth/internal/diagnostic"
	"unionsynth/internal/gen"
	"unionsynth/internal/logging"
	"unionsynth/internal/model"
	"unionsynth/internal/plan"
	"unionsynth/internal/synth"
)

// Options configures one generation pass.
type Options struct {
	// Jobs bounds the number of unions processed at once; zero means
	// GOMAXPROCS.
	Jobs    int
	Emitter gen.EmitterConfig
}

// UnionResult is the outcome of one union.
type UnionResult struct {
	// Union is the qualified union name.
	Union string
	Pos   string
	// Source is the declaring file.
	Source string
	Plan   *plan.LayoutPlan
	File   gen.GeneratedFile
	// Decls are the package-level identifiers File declares.
	Decls []model.Decl
	// Err is a *GenerationError when the union produced no file.
	Err error
}

// Result is the outcome of a generation pass.
type Result struct {
	// Unions in package order, then declaration order.
	Unions      []UnionResult
	Diagnostics *diagnostic.Diagnostics
}

// Files returns the generated files of the successful unions.
func (r *Result) Files() []gen.GeneratedFile {
	files := make([]gen.GeneratedFile, 0, len(r.Unions))

	for _, u := range r.Unions {
		if u.Err == nil {
			files = append(files, u.File)
		}
	}

	return files
}

// Write writes every generated file.
func (r *Result) Write() error {
	return gen.WriteFiles(r.Files())
}

// Check reports generated files whose on-disk content is out of date as
// error diagnostics and returns their paths.
func (r *Result) Check() ([]string, error) {
	stale, err := gen.Stale(r.Files())
	if err != nil {
		return nil, err
	}

	for _, path := range stale {
		r.Diagnostics.AddError(diagnostic.CodeStale, "", path,
			fmt.Errorf("generated file is out of date; run unionsynth gen"))
	}

	return stale, nil
}

type job struct {
	pkg   *analyze.Package
	union analyze.Union
}

// Run processes every union of pkgs. It only fails when ctx is canceled;
// per-union failures are reported in the result.
func Run(ctx context.Context, pkgs []*analyze.Package, opts Options) (*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var queue []job

	for _, p := range pkgs {
		for _, u := range p.Unions {
			queue = append(queue, job{pkg: p, union: u})
		}
	}

	emitter := gen.NewEmitter(opts.Emitter)
	results := make([]UnionResult, len(queue))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, j := range queue {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = process(emitter, j)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Unions: results, Diagnostics: &diagnostic.Diagnostics{}}
	res.report(pkgs)

	return res, nil
}

// process runs the pipeline for a single union. A panic in any stage fails
// the union, not the pass.
func process(emitter *gen.Emitter, j job) (r UnionResult) {
	start := time.Now()

	r.Source = j.union.File

	fail := func(code string, err error) UnionResult {
		r.Err = &GenerationError{Union: r.Union, Pos: r.Pos, Code: code, Err: err}
		logging.Logger().Debug("union skipped", zap.String("union", r.Union), zap.Error(err))

		return r
	}

	defer func() {
		if v := recover(); v != nil {
			logging.Logger().Error("union generation panicked",
				zap.String("union", r.Union), zap.Any("panic", v), zap.Stack("stack"))

			r.File = gen.GeneratedFile{}
			r = fail(diagnostic.CodeInternal, fmt.Errorf("internal error: %v", v))
		}
	}()

	decl := j.union.Decl
	r.Union = decl.ID()
	r.Pos = decl.Pos

	if j.union.Err != nil {
		return fail(discoveryCode(j.union.Err), j.union.Err)
	}

	if err := decl.Validate(); err != nil {
		return fail(diagnostic.CodeValidation, err)
	}

	p, err := plan.Build(decl)
	if err != nil {
		return fail(stageCode(err), err)
	}

	r.Plan = p

	t, err := synth.Synthesize(decl, p)
	if err != nil {
		return fail(diagnostic.CodeSynth, err)
	}

	dir := j.pkg.Dir
	if dir == "" {
		dir = filepath.Dir(j.union.File)
	}

	file, err := emitter.Emit(gen.Unit{
		Package: j.pkg.Name,
		Dir:     dir,
		Source:  filepath.Base(j.union.File),
		Type:    t,
	})
	if err != nil {
		return fail(diagnostic.CodeEmit, err)
	}

	r.File = file
	r.Decls = decl.PackageDecls()

	st := p.Stats()
	logging.Logger().Debug("union generated",
		zap.String("union", r.Union),
		zap.String("file", file.Path()),
		zap.Int("slots", len(st.Slots)),
		zap.Int("overlay_records", len(st.Records)),
		zap.Duration("duration", time.Since(start)))

	return r
}

// report fills the diagnostics in a fixed order: package problems, then
// union results.
func (r *Result) report(pkgs []*analyze.Package) {
	for _, p := range pkgs {
		for _, err := range p.Errors {
			// Packages with sources usually only miss the masked generated
			// declarations.
			if p.Dir == "" {
				r.Diagnostics.AddWarning(diagnostic.CodeLoad, err.Error(), "", p.Path)
			} else {
				r.Diagnostics.AddInfo(diagnostic.CodeLoad, err.Error(), "", p.Path)
			}
		}
	}

	owners := make(map[string]string)
	declared := make(map[string]map[string]model.Decl)

	for i := range r.Unions {
		u := &r.Unions[i]

		if u.Err != nil {
			code, cause := diagnostic.CodeSynth, u.Err

			var ge *GenerationError
			if errors.As(u.Err, &ge) {
				code, cause = ge.Code, ge.Err
			}

			r.Diagnostics.AddError(code, u.Union, u.Pos, cause)

			continue
		}

		path := u.File.Path()
		if owner, taken := owners[path]; taken {
			err := fmt.Errorf("output %s is already generated for %s", path, owner)
			u.Err = &GenerationError{Union: u.Union, Pos: u.Pos, Code: diagnostic.CodeConflict, Err: err}
			r.Diagnostics.AddError(diagnostic.CodeConflict, u.Union, u.Pos, err)

			continue
		}

		if err := claim(declared, u); err != nil {
			u.Err = &GenerationError{Union: u.Union, Pos: u.Pos, Code: diagnostic.CodeConflict, Err: err}
			r.Diagnostics.AddError(diagnostic.CodeConflict, u.Union, u.Pos, err)

			continue
		}

		owners[path] = u.Union
		r.Diagnostics.AddInfo(diagnostic.CodeGenerated, "generated "+path, u.Union, u.Pos)
	}
}

// claim registers the package-level identifiers of u in the namespace of its
// output directory. Nothing is registered when any of them is taken.
func claim(declared map[string]map[string]model.Decl, u *UnionResult) error {
	names := declared[u.File.Dir]
	if names == nil {
		names = make(map[string]model.Decl)
		declared[u.File.Dir] = names
	}

	var clashes []string

	for _, d := range u.Decls {
		if prev, taken := names[d.Name]; taken {
			clashes = append(clashes, fmt.Sprintf("%s is declared both as %s and as %s", d.Name, prev.What, d.What))
		}
	}

	if len(clashes) > 0 {
		return errors.New(strings.Join(clashes, "; "))
	}

	for _, d := range u.Decls {
		names[d.Name] = d
	}

	return nil
}
