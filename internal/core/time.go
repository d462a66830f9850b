package core

import "time"

// Timestamp returns the current local time in the format used by the
// message transcript.
func Timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
