package style

import "errors"

// Sentinel errors returned by State setters. The state is always left
// consistent: on error the fallback value (or the previous theme) is kept.
var (
	ErrUnknownMargin      = errors.New("unknown margin preset")
	ErrUnknownPageSize    = errors.New("unknown page size")
	ErrUnknownOrientation = errors.New("unknown orientation")
	ErrThemeNotFound      = errors.New("theme not found")
)
