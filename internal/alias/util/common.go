package util

import (
	"io"
	"log/slog"
)

// CloseQuietly closes c from a defer on a read path, where the close
// error cannot change the result. Failures are logged with the file name.
func CloseQuietly(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		slog.Warn("close file", "path", name, "err", err)
	}
}
