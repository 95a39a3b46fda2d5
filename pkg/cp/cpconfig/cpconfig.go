// Package cpconfig loads and hot-reloads cp.SolverParameters from YAML
// files or generic maps, so a long-running host process can keep a
// solver's tracing/seeding flags in sync with an operator-edited config
// file without restarting.
package cpconfig

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gocpsolver/pkg/cp"
)

// File is the on-disk / wire representation of cp.SolverParameters: the
// scalar fields map directly, with Logger intentionally omitted (a
// *zerolog.Logger isn't a config value — callers attach one after Load
// returns).
type File struct {
	Trace                 bool  `yaml:"trace" mapstructure:"trace"`
	Profile               bool  `yaml:"profile" mapstructure:"profile"`
	RandomSeed            int64 `yaml:"random_seed" mapstructure:"random_seed"`
	NameAllVariables       bool  `yaml:"name_all_variables" mapstructure:"name_all_variables"`
	PrintAddedConstraints  bool  `yaml:"print_added_constraints" mapstructure:"print_added_constraints"`
	DisableSolve           bool  `yaml:"disable_solve" mapstructure:"disable_solve"`
}

// ToParams converts f into cp.SolverParameters, attaching logger (the
// zero value falls back to cp.DefaultSolverParameters()'s disabled
// logger, so an unset logger is always safe to pass through).
func (f File) ToParams(logger zerolog.Logger) *cp.SolverParameters {
	return &cp.SolverParameters{
		Trace:                 f.Trace,
		Profile:               f.Profile,
		RandomSeed:            f.RandomSeed,
		NameAllVariables:      f.NameAllVariables,
		PrintAddedConstraints: f.PrintAddedConstraints,
		DisableSolve:          f.DisableSolve,
		Logger:                logger,
	}
}

// LoadYAML reads and parses a File from a YAML document at path.
func LoadYAML(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("cpconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("cpconfig: parse %s: %w", path, err)
	}
	return f, nil
}

// DecodeMap decodes a generic map (e.g. parsed from JSON, or assembled
// by a caller from flags) into a File via mapstructure, the same
// decoding path the OLM manifest loader uses for its weakly-typed input.
func DecodeMap(raw map[string]interface{}) (File, error) {
	var f File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return f, fmt.Errorf("cpconfig: build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return f, fmt.Errorf("cpconfig: decode map: %w", err)
	}
	return f, nil
}

// Watch monitors path for writes and invokes onUpdate with the
// newly-parsed File after every change, until ctx is canceled. Parse
// errors are logged and otherwise ignored (the last good config stays
// in effect) rather than tearing down the watch.
func Watch(ctx context.Context, logger zerolog.Logger, path string, onUpdate func(File)) error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cpconfig: create watcher: %w", err)
	}
	if err := notify.Add(path); err != nil {
		notify.Close()
		return fmt.Errorf("cpconfig: watch %s: %w", path, err)
	}

	go func() {
		defer notify.Close()
		for {
			select {
			case <-ctx.Done():
				logger.Debug().Str("path", path).Msg("cpconfig watch stopped")
				return
			case ev, ok := <-notify.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// A writer may still be mid-rewrite when the event
				// fires; a short settle delay avoids reading a
				// truncated file most of the time.
				time.Sleep(50 * time.Millisecond)
				f, err := LoadYAML(path)
				if err != nil {
					logger.Warn().Err(err).Str("path", path).Msg("cpconfig reload failed, keeping previous config")
					continue
				}
				onUpdate(f)
			case err, ok := <-notify.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("cpconfig watcher error")
			}
		}
	}()
	return nil
}
