package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
	"github.com/strive-code/strive/modify"
	"github.com/strive-code/strive/rules"
	"github.com/strive-code/strive/transpile"
	"github.com/strive-code/strive/vcs"
	"github.com/strive-code/strive/workdir"
)

// Runner executes reconstruction jobs end to end: resolve, clone,
// enumerate, per-file transpilation, assemble, publish.
//
// A Runner is safe for concurrent use; each Run works in its own
// released-on-exit workdir and touches no shared mutable state.
type Runner struct {
	cfg      *config.Config
	trans    *transpile.Transpiler
	injector *modify.Injector
	git      *vcs.Client
	workdirs *workdir.Manager
	store    *Store
	emitter  Emitter
	log      *zap.SugaredLogger
}

// NewRunner creates a runner from explicit collaborators. The store may
// be nil, in which case job history is not persisted. A nil emitter
// discards progress events.
func NewRunner(cfg *config.Config, table *rules.Table, injector *modify.Injector, store *Store, emitter Emitter) *Runner {
	if emitter == nil {
		emitter = NewNopEmitter()
	}
	return &Runner{
		cfg:      cfg,
		trans:    transpile.New(table),
		injector: injector,
		git:      vcs.NewClient(cfg.Git),
		workdirs: workdir.NewManager(cfg.WorkdirRoot()),
		store:    store,
		emitter:  emitter,
		log:      logger.ComponentLogger("pipeline"),
	}
}

// Run executes one reconstruction job and returns its summary.
//
// Clone and publish failures are fatal to the job. A file that cannot
// be read or transpiled is recorded and skipped; the job still
// completes with whatever could be processed.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	src, err := vcs.Resolve(req.Source)
	if err != nil {
		return nil, err
	}

	job, err := NewJob(req)
	if err != nil {
		return nil, err
	}
	job.Start()
	r.persistCreate(job)

	// Tag the context so per-file logs from concurrent jobs stay attributable
	ctx = logger.WithJobID(ctx, job.ID)

	r.log.Infow("starting reconstruction job",
		logger.FieldJobID, job.ID,
		logger.FieldSource, src.Original,
		logger.FieldTarget, job.TargetLanguage,
	)

	wd, err := r.workdirs.Acquire(job.ID)
	if err != nil {
		return r.fail(job, "workdir", err)
	}
	defer wd.Release()

	// Clone
	r.emitter.EmitStage("clone", src.Original)
	cloneCtx, cancelClone := context.WithTimeout(ctx, r.cfg.CloneTimeout())
	err = r.git.Clone(cloneCtx, src, wd.OSPath(src.Name))
	cancelClone()
	if err != nil {
		return r.fail(job, "clone", err)
	}
	job.MarkCloned(src.Name)
	r.persist(job)

	// Enumerate
	files, err := wd.ListNonHidden(src.Name)
	if err != nil {
		return r.fail(job, "enumerate", errors.Wrap(err, "failed to enumerate repository files"))
	}
	job.MarkEnumerated(len(files))
	r.persist(job)
	r.emitter.EmitStage("enumerate", fmt.Sprintf("%d files in %s", len(files), src.Name))

	// Per-file processing
	job.MarkProcessing()
	r.persist(job)
	r.emitter.EmitStage("process", fmt.Sprintf("transpiling to %s", job.TargetLanguage))
	records, err := r.processFiles(ctx, wd, src.Name, files, job)
	if err != nil {
		return r.fail(job, "process", err)
	}

	transpiled := 0
	for _, rec := range records {
		if rec.Status == FileStatusTranspiled {
			transpiled++
		}
	}

	// Assemble
	assembledName := fmt.Sprintf("%s_strived_in_%s", src.Name, job.TargetLanguage)
	r.emitter.EmitStage("assemble", assembledName)
	if err := wd.CopyNonHidden(src.Name, assembledName); err != nil {
		return r.fail(job, "assemble", errors.Wrap(err, "failed to assemble output repository"))
	}
	job.MarkAssembled(transpiled)
	r.persist(job)

	// Publish
	dest := vcs.PublishDestination(r.cfg.EffectivePublishBase(), assembledName)
	r.emitter.EmitStage("publish", dest)
	pubCtx, cancelPub := context.WithTimeout(ctx, r.cfg.PublishTimeout())
	location, err := r.git.Publish(pubCtx, wd.OSPath(assembledName), dest, publishMessage(job.TargetLanguage))
	cancelPub()
	if err != nil {
		return r.fail(job, "publish", err)
	}
	job.MarkPublished(location)
	r.persist(job)

	job.Complete()
	r.persist(job)

	r.log.Infow("reconstruction job complete",
		logger.FieldJobID, job.ID,
		logger.FieldTotalCount, job.FilesEnumerated,
		logger.FieldTranspiled, job.FilesTranspiled,
		logger.FieldLocation, job.NewLocation,
	)

	result := ResultFromJob(job)
	r.emitter.EmitComplete(map[string]interface{}{
		"job_id":           result.JobID,
		"original":         result.Original,
		"new_location":     result.NewLocation,
		"language":         result.Language,
		"files_enumerated": job.FilesEnumerated,
		"files_transpiled": result.FilesTranspiled,
		"modifications":    result.Modifications,
	})
	return result, nil
}

// publishMessage is the commit message stamped on published repositories
func publishMessage(targetLang string) string {
	return fmt.Sprintf("Reconstructed in %s by Strive-Code", targetLang)
}

// fail marks the job failed, persists it, and reports the error
func (r *Runner) fail(job *Job, stage string, err error) (*Result, error) {
	r.emitter.EmitError(stage, err)
	job.Fail(err)
	r.persist(job)
	r.log.Errorw("reconstruction job failed",
		logger.FieldJobID, job.ID,
		logger.FieldStage, stage,
		logger.FieldError, err,
	)
	return nil, err
}

// persistCreate inserts the job row. Persistence is best effort: a
// storage failure is logged but never aborts the job itself.
func (r *Runner) persistCreate(job *Job) {
	if r.store == nil {
		return
	}
	if err := r.store.CreateJob(job); err != nil {
		r.log.Warnw("failed to persist job",
			logger.FieldJobID, job.ID,
			logger.FieldError, err,
		)
	}
}

// persist updates the job row, best effort
func (r *Runner) persist(job *Job) {
	if r.store == nil {
		return
	}
	if err := r.store.UpdateJob(job); err != nil {
		r.log.Warnw("failed to persist job update",
			logger.FieldJobID, job.ID,
			logger.FieldState, job.State,
			logger.FieldError, err,
		)
	}
}
