package export

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// zipEpoch is the modification time written for every entry so the same
// bundle always yields the same archive bytes.
var zipEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteZip streams the bundle to w as a zip archive, entries in bundle order.
func WriteZip(w io.Writer, b *Bundle) error {
	zw := zip.NewWriter(w)

	for _, f := range b.files {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return fmt.Errorf("%w: create %s: %w", ErrExport, f.Path, err)
		}
		if _, err := io.WriteString(entry, f.Content); err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrExport, f.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: finish archive: %w", ErrExport, err)
	}
	return nil
}
