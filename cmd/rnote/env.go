package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-rnote/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and converter creation.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // used when neither --config nor RNOTE_CONFIG names a file
	NewPool PoolFactory
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
}
