package fitcalc

import "embed"

// Content holds the default configuration
//
//go:embed etc
var Content embed.FS
