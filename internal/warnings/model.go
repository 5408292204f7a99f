// Package warnings models non-fatal skips surfaced during scanning and
// merging. A warning explains why something was excluded without aborting
// the operation that produced it.
package warnings

import "fmt"

// Warning codes.
const (
	CodeRootUnavailable   = "ROOT_UNAVAILABLE"
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	CodeEntryExcluded     = "ENTRY_EXCLUDED"
)

// Warning represents a single non-fatal skip.
type Warning struct {
	Code    string
	Subject string // the path or entry the warning is about
	Message string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("WARNING %s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("WARNING %s: %s: %s", w.Code, w.Subject, w.Message)
}

// RootUnavailable reports a library root that could not be read.
func RootUnavailable(root string, reason error) Warning {
	return Warning{Code: CodeRootUnavailable, Subject: root, Message: reason.Error()}
}

// SourceUnavailable reports a shader source directory that could not be read.
func SourceUnavailable(dir string, reason string) Warning {
	return Warning{Code: CodeSourceUnavailable, Subject: dir, Message: reason}
}

// EntryExcluded reports a library entry dropped from scan results.
func EntryExcluded(entry string, reason string) Warning {
	return Warning{Code: CodeEntryExcluded, Subject: entry, Message: reason}
}
