package httpserver

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// saveCover stores an uploaded cover image under dir with a
// timestamp-prefixed, whitespace-stripped name and returns the web path.
func saveCover(file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(filepath.Base(file.Filename), " ", ""))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save cover: %w", err)
	}

	return "uploads/" + name, nil
}
