package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/alnah/go-rnote/internal/config"
)

// ErrDiagnostics reports sources that failed the check.
var ErrDiagnostics = errors.New("sources have diagnostics")

// runCheck compiles sources without rendering and prints their diagnostics.
// Error diagnostics fail the check; with --strict, warnings do too.
func runCheck(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	sess, err := openSession(flags.common, env, func(cfg *config.Config) {
		flags.document.applyTo(cfg)
		cfg.Render.Workers = 1
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sess.close()) }()

	if len(positional) == 0 {
		return fmt.Errorf("%w: check takes one or more files or directories", ErrNoInput)
	}

	var files []FileToConvert
	for _, arg := range positional {
		found, err := discoverFiles(arg, "")
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files found", ErrNoInput, sourceExt)
	}

	pool, err := env.NewPool(sess.cfg, sess.log, env.Now)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, pool.Close()) }()

	conv, err := pool.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer pool.Release(conv)

	var errCount, warnCount int
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		source, _, err := readSource(f.InputPath, env.Stdin)
		if err != nil {
			return err
		}
		res := conv.Compile(source)
		printDiagnostics(env.Stdout, displayPath(f.InputPath), res.Diagnostics, flags.common.quiet)
		e, w := countSeverities(res.Diagnostics)
		errCount += e
		warnCount += w
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d %s checked: %d errors, %d warnings\n",
			len(files), plural(len(files), "file", "files"), errCount, warnCount)
	}

	if errCount > 0 || (flags.strict && warnCount > 0) {
		return fmt.Errorf("%w: %d errors, %d warnings", ErrDiagnostics, errCount, warnCount)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
