package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrEmptyPayload = errors.New("render: empty payload")

// Renderer turns a serialized pass payload into a scannable image artifact
// on disk. Artifacts are temporary; callers remove them after the delivery
// attempt with Cleanup.
type Renderer interface {
	Render(payload, passID string) (string, error)
}

// QRRenderer writes QR PNG files into a scratch directory.
type QRRenderer struct {
	dir  string
	size int
}

func NewQRRenderer() *QRRenderer {
	return &QRRenderer{
		dir:  os.TempDir(),
		size: 330,
	}
}

// Render encodes the payload into a PNG named after the pass identifier and
// returns the file path.
func (r *QRRenderer) Render(payload, passID string) (string, error) {
	if payload == "" {
		return "", ErrEmptyPayload
	}
	path := filepath.Join(r.dir, fmt.Sprintf("qr_%s.png", passID))
	if err := qrcode.WriteFile(payload, qrcode.Low, r.size, path); err != nil {
		return "", fmt.Errorf("render: write qr image: %w", err)
	}
	return path, nil
}

// Cleanup removes rendered artifacts. Removal failures are swallowed: a
// leftover temp file must never mask a delivery error or fail the request.
func Cleanup(paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		_ = os.Remove(p)
	}
}
