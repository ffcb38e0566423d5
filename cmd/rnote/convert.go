package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/config"
)

// runConvert converts one source, stdin, or every .rn file under a directory.
func runConvert(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.render.workers); err != nil {
		return err
	}

	sess, err := openSession(flags.common, env, func(cfg *config.Config) {
		flags.document.applyTo(cfg)
		flags.render.applyTo(cfg)
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sess.close()) }()

	if len(positional) != 1 {
		return fmt.Errorf("%w: convert takes exactly one file, directory, or - for stdin", ErrNoInput)
	}
	inputPath := positional[0]
	outputDir := resolveOutputDir(flags.output, sess.env.OutputDir)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files in %s", ErrNoInput, sourceExt, inputPath)
	}

	css, err := readCSS(flags.css)
	if err != nil {
		return err
	}

	pool, err := env.NewPool(sess.cfg, sess.log, env.Now)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, pool.Close()) }()

	sess.log.Debug("Converting",
		zap.String("input", inputPath),
		zap.Int("files", len(files)),
		zap.Int("workers", min(pool.Size(), len(files))))

	results := convertBatch(ctx, pool, files, &conversionParams{
		css:       css,
		outputDir: outputDir,
		html:      flags.html,
		htmlOnly:  flags.htmlOnly,
		strict:    flags.strict,
		stdin:     env.Stdin,
	})

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%d of %d conversions failed, first: %w", summary.Failed, len(results), firstError(results))
}

// resolveOutputDir returns the output flag, or RNOTE_OUTPUT_DIR when unset.
func resolveOutputDir(flagOutput, envOutput string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return envOutput
}

// readCSS loads the optional extra stylesheet.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(data), nil
}
