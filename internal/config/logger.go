package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Logging levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// ErrInvalidLogLevel is returned for a level other than none, normal or debug.
var ErrInvalidLogLevel = errors.New("invalid logging level")

// LoggingConfig defines diagnostic logging. Console output goes to the writer
// given to Prepare; Destination optionally adds a file log.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // none, normal, debug (default: normal)
	Destination string `yaml:"destination"` // optional log file, always appended
}

func (conf *LoggingConfig) validate() error {
	switch conf.Level {
	case "", LevelNone, LevelNormal, LevelDebug:
	default:
		return fmt.Errorf("%w: logging.level %q (must be none, normal, or debug)", ErrInvalidLogLevel, conf.Level)
	}
	return validateFieldLength("logging.destination", conf.Destination, MaxPathLength)
}

// Prepare returns a configured zap logger writing console output to w.
// The returned cleanup closes the log file, if any.
func (conf *LoggingConfig) Prepare(w io.Writer) (*zap.Logger, func() error, error) {
	if err := conf.validate(); err != nil {
		return nil, nil, err
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	var consoleCore zapcore.Core
	switch conf.Level {
	case LevelDebug:
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	case LevelNone:
		consoleCore = zapcore.NewNopCore()
	default:
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel)
	}

	cleanup := func() error { return nil }
	fileCore := zapcore.NewNopCore()
	if conf.Destination != "" {
		f, err := os.OpenFile(conf.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- log path is user-provided
		if err != nil {
			return nil, nil, fmt.Errorf("opening log destination (%s): %w", conf.Destination, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), zapcore.DebugLevel)
		cleanup = f.Close
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore)).Named("rnote"), cleanup, nil
}

// When logging errors to the console, do not output the verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
