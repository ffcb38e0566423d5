package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
)

// CLIConverter is the part of rnote.Converter the commands use.
type CLIConverter interface {
	Convert(ctx context.Context, input rnote.Input) (*rnote.ConvertResult, error)
	Compile(source string) *rnote.CompileResult
}

// Compile-time interface implementation check.
var _ CLIConverter = (*rnote.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// PoolFactory builds the converter pool for a resolved configuration.
type PoolFactory func(cfg *config.Config, log *zap.Logger, now func() time.Time) (Pool, error)

// converterPool adapts rnote.ConverterPool to Pool.
type converterPool struct {
	pool *rnote.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool sizes the pool from render.workers and GOMAXPROCS.
// The asset path is checked up front because converters are created lazily.
func newConverterPool(cfg *config.Config, log *zap.Logger, now func() time.Time) (Pool, error) {
	if cfg.Assets.BasePath != "" {
		if _, err := rnote.NewAssetLoader(cfg.Assets.BasePath); err != nil {
			return nil, err
		}
	}

	opts := converterOptions(cfg, log, now)
	size := rnote.ResolvePoolSize(cfg.Render.Workers)
	log.Debug("Converter pool", zap.Int("size", size))

	return &converterPool{
		pool: rnote.NewConverterPool(size, func() (*rnote.Converter, error) {
			return rnote.NewConverter(opts...)
		}),
	}, nil
}

// converterOptions maps the configuration onto converter options.
func converterOptions(cfg *config.Config, log *zap.Logger, now func() time.Time) []rnote.Option {
	opts := []rnote.Option{
		rnote.WithLogger(log),
		rnote.WithClock(now),
		rnote.WithTimeout(cfg.Render.TimeoutDuration()),
		rnote.WithDateFormat(cfg.Date.Format),
		rnote.WithDefaults(rnote.Defaults{
			Theme:       cfg.Document.Theme,
			Margin:      cfg.Document.Margin,
			PageSize:    cfg.Document.Size,
			Orientation: cfg.Document.Orientation,
		}),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, rnote.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*rnote.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
