package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/hints"
)

// ErrThemeCheck reports themes with CSS grammar errors.
var ErrThemeCheck = errors.New("theme check failed")

// runThemes lists themes and templates, or checks theme CSS with --check.
// Positional names restrict --check to those themes.
func runThemes(_ context.Context, args []string, env *Environment) (err error) {
	flags, names, err := parseThemesFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	sess, err := openSession(flags.common, env, func(cfg *config.Config) {
		if flags.assetPath != "" {
			cfg.Assets.BasePath = flags.assetPath
		}
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sess.close()) }()

	store, err := rnote.NewAssetLoader(sess.cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	themes, err := store.Themes()
	if err != nil {
		return err
	}

	if !flags.check {
		templates, err := store.Templates()
		if err != nil {
			return err
		}
		printAssetList(env, themes, templates)
		return nil
	}

	if len(names) == 0 {
		names = themes
	}
	return checkThemes(env, store, names, themes, flags.common.quiet)
}

func printAssetList(env *Environment, themes, templates []string) {
	fmt.Fprintln(env.Stdout, "Themes:")
	for _, name := range themes {
		if name == rnote.DefaultTheme {
			fmt.Fprintf(env.Stdout, "  %s (default)\n", name)
			continue
		}
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
	fmt.Fprintln(env.Stdout, "Templates:")
	for _, name := range templates {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
}

func checkThemes(env *Environment, store *rnote.AssetStore, names, available []string, quiet bool) error {
	failed := 0
	for _, name := range names {
		if !slices.Contains(available, name) {
			return fmt.Errorf("%w: %q%s", rnote.ErrThemeNotFound, name, hints.ForThemeNotFound(available))
		}
		res, err := store.CheckTheme(name)
		if err != nil {
			return err
		}
		if !res.OK() {
			failed++
			fmt.Fprintf(env.Stdout, "FAIL %s: %d errors, first: %v\n", name, res.Errors, res.FirstErr)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "ok   %s: %d rulesets, %d at-rules, %d declarations\n",
				name, res.Rulesets, res.AtRules, res.Declarations)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d themes", ErrThemeCheck, failed, len(names))
	}
	return nil
}
