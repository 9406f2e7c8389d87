package humanize

import "time"

// timestampLayout matches the fixed-width, locale-free timestamp format
// stat prints; no ecosystem package is needed for a single constant
// reference.Time layout, so this stays on the standard library.
const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders a Unix timestamp (as stored in an inode) in local
// time.
func FormatTimestamp(epochSeconds uint32) string {
	return time.Unix(int64(epochSeconds), 0).Format(timestampLayout)
}
