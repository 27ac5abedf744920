// Package ocr extracts expense details from receipt images.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lzy117/accountint-app/internal/common"
)

// Extraction holds the details recovered from a receipt image.
type Extraction struct {
	Merchant string
	Date     string
	Amount   float64
}

// Extractor reads an image from disk and extracts expense details.
// Implementations must return an error, never panic, for missing paths,
// empty paths, and non-image content.
type Extractor interface {
	Extract(ctx context.Context, imagePath string) (*Extraction, error)
}

// Image headers we accept.
var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// HeaderExtractor verifies the file is a real image by sniffing its
// header, then produces placeholder details derived from the filename.
// A real OCR engine slots in behind the same interface.
type HeaderExtractor struct{}

// NewHeaderExtractor creates the stand-in extractor.
func NewHeaderExtractor() *HeaderExtractor {
	return &HeaderExtractor{}
}

// Extract implements Extractor.
func (e *HeaderExtractor) Extract(ctx context.Context, imagePath string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(imagePath) == "" {
		return nil, fmt.Errorf("%w: empty path", common.ErrImageNotFound)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrImageNotFound, imagePath)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	// A short or empty file is not a read failure, just not an image.
	header := make([]byte, len(pngMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	header = header[:n]

	if !bytes.HasPrefix(header, jpegMagic) && !bytes.Equal(header, pngMagic) {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedImage, imagePath)
	}

	return &Extraction{
		Amount:   120.50,
		Date:     "2025-11-01",
		Merchant: merchantFromFilename(imagePath),
	}, nil
}

// merchantFromFilename turns "receipts/noodle_bar-0131.jpg" into
// "noodle bar 0131" so the category matcher has text to work with.
func merchantFromFilename(imagePath string) string {
	base := filepath.Base(imagePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
