package classify

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Upload describes a file picked from disk.
type Upload struct {
	Path     string
	Name     string
	Size     int64
	MIMEType string
}

// Inspect stats the file at path and sniffs its MIME type from the header
// bytes.
func Inspect(path string) (Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		return Upload{}, fmt.Errorf("upload %q is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Upload{}, fmt.Errorf("detect mime type: %w", err)
	}

	return Upload{
		Path:     path,
		Name:     info.Name(),
		Size:     info.Size(),
		MIMEType: mt.String(),
	}, nil
}

// ClassifyUpload runs Classify on an inspected file.
func (c *Classifier) ClassifyUpload(u Upload, p Path) Result {
	return c.Classify(u.Name, u.Size, u.MIMEType, p)
}
