package domain

import "time"

// MaxTargetLength bounds the cached target triple, in bytes.
const MaxTargetLength = 2047

// ProjectDir is the canonical (absolute, symlink-resolved) directory holding both project files.
// Two ProjectDir values denote the same project only if they are byte-equal.
type ProjectDir string

// String returns the directory path.
func (d ProjectDir) String() string {
	return string(d)
}

// TargetTriple identifies the compiler's default target platform, e.g. "x86_64-pc-linux-gnu".
type TargetTriple string

// String returns the triple.
func (t TargetTriple) String() string {
	return string(t)
}

// Truncate returns the triple cut to at most MaxTargetLength bytes.
func (t TargetTriple) Truncate() TargetTriple {
	if len(t) <= MaxTargetLength {
		return t
	}
	return t[:MaxTargetLength]
}

// CacheEntry is the content of a valid completion cache.
type CacheEntry struct {
	ProjectDir   ProjectDir
	IncludePaths []string
	Target       TargetTriple
}

// CacheRecord is a persisted CacheEntry together with what it was derived from.
type CacheRecord struct {
	ProjectDir   string    `json:"project_dir"`
	IncludePaths []string  `json:"include_paths"`
	Target       string    `json:"target"`
	Compiler     string    `json:"compiler,omitzero"`
	Fingerprint  string    `json:"fingerprint,omitzero"`
	Timestamp    time.Time `json:"timestamp,omitzero"`
}

// Entry converts the record back into a cache entry.
func (r CacheRecord) Entry() CacheEntry {
	return CacheEntry{
		ProjectDir:   ProjectDir(r.ProjectDir),
		IncludePaths: r.IncludePaths,
		Target:       TargetTriple(r.Target),
	}
}
