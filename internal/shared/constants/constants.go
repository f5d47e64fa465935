package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultCollectorTimeout bounds each network signal collector independently.
	DefaultCollectorTimeout = 5 * time.Second
	// MaxRedirects caps how many redirects the HTTP collector follows before
	// reporting the chain as excessive.
	MaxRedirects = 10
	// MaxDomainLength is the RFC 1035 limit on a full domain name.
	MaxDomainLength = 253
	// MaxLabelLength is the RFC 1035 limit on a single DNS label.
	MaxLabelLength = 63
)

const (
	// VariantProbeConcurrency limits parallel DNS lookups when probing
	// typo-variant registrations.
	VariantProbeConcurrency = 5
	// VariantProbeTimeout bounds a single variant DNS query.
	VariantProbeTimeout = 2 * time.Second
	// MaxVariants caps generated typo variants so probe runs stay small.
	MaxVariants = 40
)
