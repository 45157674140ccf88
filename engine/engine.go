// Package engine exposes Strive's operations behind one facade:
// single-unit transpilation, source optimization, and full repository
// reconstruction. The CLI routes every command through Dispatch so the
// action set stays closed in one place.
package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
	"github.com/strive-code/strive/modify"
	"github.com/strive-code/strive/optimize"
	"github.com/strive-code/strive/pipeline"
	"github.com/strive-code/strive/rules"
	"github.com/strive-code/strive/transpile"
)

// Engine wires the rule table, transpiler, optimizer, and pipeline
// runner behind typed operations. Construct once at startup; the
// configuration and rule table never change afterwards.
type Engine struct {
	cfg    *config.Config
	table  *rules.Table
	trans  *transpile.Transpiler
	runner *pipeline.Runner
	log    *zap.SugaredLogger
}

// New creates an engine from explicit configuration. The store may be
// nil to disable job history; the emitter may be nil to run silently.
func New(cfg *config.Config, store *pipeline.Store, emitter pipeline.Emitter) (*Engine, error) {
	table, err := rules.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rule table")
	}
	injector, err := modify.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load modification triggers")
	}

	return &Engine{
		cfg:    cfg,
		table:  table,
		trans:  transpile.New(table),
		runner: pipeline.NewRunner(cfg, table, injector, store, emitter),
		log:    logger.ComponentLogger("engine"),
	}, nil
}

// Dispatch routes a request to its action handler. The switch is
// exhaustive over the Action set; an unknown action is an invalid
// request, never a panic.
func (e *Engine) Dispatch(ctx context.Context, action Action, req interface{}) (interface{}, error) {
	switch action {
	case ActionTranspile:
		r, ok := req.(TranspileRequest)
		if !ok {
			return nil, errors.NewInvalidRequestError("transpile action requires a transpile request")
		}
		return e.Transpile(r)
	case ActionOptimize:
		r, ok := req.(OptimizeRequest)
		if !ok {
			return nil, errors.NewInvalidRequestError("optimize action requires an optimize request")
		}
		return e.Optimize(r)
	case ActionReconstruct:
		r, ok := req.(ReconstructRequest)
		if !ok {
			return nil, errors.NewInvalidRequestError("reconstruct action requires a reconstruct request")
		}
		return e.Reconstruct(ctx, r)
	default:
		return nil, errors.NewInvalidRequestError("unknown action %q", action)
	}
}

// Transpile rewrites one unit of source text between languages.
func (e *Engine) Transpile(req TranspileRequest) (*TranspileResponse, error) {
	from := normalizeLanguage(req.From)
	to := normalizeLanguage(req.To)
	if from == "" || to == "" {
		return nil, errors.NewInvalidRequestError("transpile requires both from and to languages")
	}

	res, err := e.trans.Transpile(transpile.Unit{Text: req.Code, From: from, To: to})
	if err != nil {
		return nil, err
	}

	return &TranspileResponse{
		Code:   res.Text,
		From:   from,
		To:     to,
		Status: res.Status,
	}, nil
}

// Optimize runs the cleanup pass over source text.
func (e *Engine) Optimize(req OptimizeRequest) (*OptimizeResponse, error) {
	lang := normalizeLanguage(req.Language)
	if lang == "" {
		return nil, errors.NewInvalidRequestError("optimize requires a language")
	}

	res := optimize.Optimize(req.Code, lang)
	return &OptimizeResponse{
		Code:         res.Code,
		Original:     res.Original,
		Improvements: res.Improvements,
		Savings:      res.Savings,
		Language:     res.Language,
	}, nil
}

// Reconstruct runs a full repository reconstruction job.
//
// The target language is not validated against the rule table up front:
// a pair the table cannot serve fails file by file, and the job still
// reports whatever it could process.
func (e *Engine) Reconstruct(ctx context.Context, req ReconstructRequest) (*pipeline.Result, error) {
	source := strings.TrimSpace(req.SourceLocation)
	if source == "" {
		return nil, errors.NewInvalidRequestError("source_location is required")
	}
	target := normalizeLanguage(req.TargetLanguage)
	if target == "" {
		return nil, errors.NewInvalidRequestError("target_language is required")
	}

	optimizeFlag := e.cfg.EffectiveOptimize()
	if req.Optimize != nil {
		optimizeFlag = *req.Optimize
	}

	return e.runner.Run(ctx, pipeline.Request{
		Source:         source,
		TargetLanguage: target,
		Modifications:  req.Modifications,
		Optimize:       optimizeFlag,
	})
}

// Capabilities reports the languages and pairs the loaded ruleset serves.
func (e *Engine) Capabilities() *Capabilities {
	pairs := e.table.Pairs()
	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.String()
	}

	return &Capabilities{
		Languages:      e.table.Languages(),
		Pairs:          names,
		RulesetVersion: e.table.Version(),
	}
}

func normalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
