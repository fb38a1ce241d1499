// Package changelog inserts dated release sections into CHANGELOG.md.
package changelog

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used in section headers.
const DateLayout = "2006-01-02"

// Entry is the section added for one release.
type Entry struct {
	Version          string
	Date             time.Time
	Updated          bool
	FormatterName    string
	FormatterVersion string
}

// Header returns the "## [<version>] - <date>" line without a newline.
func (e Entry) Header() string {
	return fmt.Sprintf("## [%s] - %s", e.Version, e.Date.Format(DateLayout))
}

// Render returns the block inserted after the changelog header:
//
//	(blank)
//	## [1.3.0] - 2026-10-17
//	(blank)
//	### Updated
//	(blank)
//	- Update to gdscript-formatter version 0.9.1
//
// The "### Updated" subsection is only present when Updated is set.
func (e Entry) Render() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(e.Header())
	sb.WriteString("\n\n")
	if e.Updated {
		sb.WriteString("### Updated\n\n")
		fmt.Fprintf(&sb, "- Update to %s version %s\n", e.FormatterName, e.FormatterVersion)
	}
	return sb.String()
}
