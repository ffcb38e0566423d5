package main

import (
	"errors"
	"fmt"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/fileutil"
	"github.com/alnah/go-rnote/internal/hints"
)

// session is the resolved configuration and logger of one command run.
type session struct {
	cfg      *config.Config
	env      *envConfig
	log      *zap.Logger
	closeLog func() error
}

// openSession resolves configuration in precedence order (flags > env >
// config file > defaults), validates it, and prepares the logger.
// apply, if not nil, applies the command's flags.
func openSession(common commonFlags, env *Environment, apply func(*config.Config)) (*session, error) {
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(common.config, envCfg.ConfigPath, env.Config)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	if apply != nil {
		apply(cfg)
	}
	switch {
	case common.verbose:
		cfg.Logging.Level = config.LevelDebug
	case common.quiet:
		cfg.Logging.Level = config.LevelNone
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closeLog, err := cfg.Logging.Prepare(env.Stderr)
	if err != nil {
		return nil, err
	}

	warnUnknownEnvVars(log)

	// maxprocs.Set only fails on an invalid GOMAXPROCS env, in which case the
	// runtime default stays in effect.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Sugar().Debugf))

	return &session{cfg: cfg, env: envCfg, log: log, closeLog: closeLog}, nil
}

// loadConfig loads the named config, or copies base when no name is given.
func loadConfig(flagName, envName string, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		if base == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *base
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, configHint(name, err))
	}
	return cfg, nil
}

func configHint(name string, err error) string {
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
		return hints.ForConfigNotFound(config.SearchPaths(name))
	}
	return ""
}

// close flushes the logger and closes the log file.
func (s *session) close() error {
	// Sync fails on terminals (ENOTTY/EINVAL) and carries no useful signal.
	_ = s.log.Sync()
	return s.closeLog()
}
