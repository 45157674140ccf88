package pipeline

import (
	"context"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/strive-code/strive/classify"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
	"github.com/strive-code/strive/optimize"
	"github.com/strive-code/strive/transpile"
	"github.com/strive-code/strive/workdir"
)

// processFiles runs per-file processing over the enumerated files with
// bounded parallelism. Every file gets a record; a worker returns a
// non-nil error only on context cancellation, so one bad file never
// cancels its siblings.
func (r *Runner) processFiles(ctx context.Context, wd *workdir.Workdir, cloneDir string, files []string, job *Job) ([]FileRecord, error) {
	workers, warning := effectiveWorkerCount(r.cfg.EffectiveWorkers())
	if warning != "" {
		r.log.Warnw(warning, logger.FieldJobID, job.ID)
		r.emitter.EmitInfo(warning)
	}

	records := make([]FileRecord, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			records[i] = r.processFile(gctx, wd, cloneDir, files[i], job)
			r.emitter.EmitFile(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "file processing aborted")
	}

	return records, nil
}

// processFile reads, transpiles, optimizes, and rewrites one file into
// the clone tree. Outcomes are reported through the record, never as an
// error: non-code and unrecognized files are skipped, unreadable or
// untranspilable files are failed.
func (r *Runner) processFile(ctx context.Context, wd *workdir.Workdir, cloneDir, rel string, job *Job) FileRecord {
	record := FileRecord{Path: rel, Status: FileStatusPending}

	if !classify.IsCodeFile(rel) {
		record.Status = FileStatusSkipped
		return record
	}

	fctx, cancel := context.WithTimeout(ctx, r.cfg.FileTimeout())
	defer cancel()

	content, err := wd.ReadFile(path.Join(cloneDir, rel))
	if err != nil {
		return r.failRecord(fctx, record, err)
	}

	lang := classify.Detect(rel, content)
	if lang == classify.Unknown {
		record.Status = FileStatusSkipped
		return record
	}
	record.Language = lang

	text := string(content)
	if lang != job.TargetLanguage {
		res, terr := r.trans.Transpile(transpile.Unit{Text: text, From: lang, To: job.TargetLanguage})
		if terr != nil {
			return r.failRecord(fctx, record, errors.NewFileTranspileError(terr, rel))
		}
		text = res.Text
	}

	if err := fctx.Err(); err != nil {
		return r.failRecord(fctx, record, errors.Wrap(err, "file processing aborted"))
	}

	if job.Optimize {
		text = optimize.Optimize(text, job.TargetLanguage).Code
	}
	text = r.injector.Apply(text, job.Modifications)

	outRel := classify.OutputPath(rel, job.TargetLanguage)
	if err := wd.WriteFileAtomic(path.Join(cloneDir, outRel), []byte(text)); err != nil {
		return r.failRecord(fctx, record, err)
	}

	record.OutputPath = outRel
	record.Status = FileStatusTranspiled
	return record
}

// failRecord marks a record failed and logs the per-file error with
// whatever job context the caller's context carries
func (r *Runner) failRecord(ctx context.Context, record FileRecord, err error) FileRecord {
	record.Status = FileStatusFailed
	record.Error = err.Error()
	fields := []interface{}{
		logger.FieldPath, record.Path,
		logger.FieldError, err,
	}
	r.log.Warnw("file processing failed", append(fields, logger.FieldsFromContext(ctx)...)...)
	return record
}
