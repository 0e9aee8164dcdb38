package main

import "errors"

var (
	// ErrDegenerateDomain is returned by NewScale when the domain maximum is not positive.
	ErrDegenerateDomain = errors.New("degenerate scale domain")
	// ErrSurfaceTooSmall means the surface cannot fit the fixed chart margins.
	ErrSurfaceTooSmall = errors.New("drawing surface smaller than chart margins")

	ErrUnknownVariant      = errors.New("unknown chart variant")
	ErrUnknownPreset       = errors.New("unknown exposure preset")
	ErrUnsupportedFormat   = errors.New("unsupported output format")
	ErrNoBulkEntries       = errors.New("no entries found in bulk text")
	ErrInvalidChartState   = errors.New("invalid chart state")
	ErrBandIndexOutOfRange = errors.New("reference band index out of range")
	ErrInvalidLevelSpec    = errors.New("invalid reference band spec")
)
