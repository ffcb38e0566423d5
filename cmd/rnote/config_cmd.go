package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, after the config
// file, environment and flags have been applied.
func runConfig(_ context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments, got %q", ErrInvalidFlags, positional[0])
	}

	sess, err := openSession(flags.common, env, func(cfg *config.Config) {
		flags.document.applyTo(cfg)
		flags.render.applyTo(cfg)
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sess.close()) }()

	out, err := yamlutil.Marshal(sess.cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
