package commands

import (
	"io"
	"os"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/engine"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/pipeline"
)

// newEngine loads configuration and builds an engine instance. Store and
// emitter may be nil for commands that never run the reconstruction pipeline.
func newEngine(store *pipeline.Store, emitter pipeline.Emitter) (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	eng, err := engine.New(cfg, store, emitter)
	if err != nil {
		return nil, nil, err
	}

	return eng, cfg, nil
}

// readSource reads code from the file named in args, or from stdin when no
// file argument was given.
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrapf(err, "failed to read file %s", args[0])
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read from stdin")
	}
	return string(data), nil
}
