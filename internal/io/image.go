package ioutils

import (
	"bytes"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// coverNames are the file names probed for a show's cover art, in order.
var coverNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"poster.jpg", "poster.jpeg", "poster.png",
}

// ImageService provides image operations for show cover art.
//
// ImageService is used to:
//   - Locate a cover image in a show directory
//   - Scale it down to a handful of pixels for terminal previews
//
// Example usage:
//
//	svc := NewImageService(fs)
//	if path, ok := svc.FindCover(show.Dir); ok {
//	    thumb, _ := svc.Thumbnail(path, 16, 16)
//	}
type ImageService struct {
	fs afero.Fs
}

// NewImageService creates a new ImageService reading from fs.
func NewImageService(fs afero.Fs) *ImageService {
	return &ImageService{fs: fs}
}

// FindCover returns the first cover image found directly inside dir.
func (s *ImageService) FindCover(dir string) (string, bool) {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if IsRegularFile(s.fs, path) {
			return path, true
		}
	}
	return "", false
}

// Thumbnail decodes the image at path and scales it to fit within
// maxWidth x maxHeight pixels.
//
// The aspect ratio is preserved. Images already smaller than the bounds are
// returned at their original size. The Catmull-Rom kernel is used for
// scaling.
//
// Example:
//
//	// A 1500x1000 poster becomes 24x16
//	thumb, err := svc.Thumbnail("/media/Bleach/poster.png", 24, 24)
func (s *ImageService) Thumbnail(path string, maxWidth, maxHeight int) (image.Image, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = max(1, int(float64(maxHeight)*ratio))
			height = maxHeight
		} else {
			height = max(1, int(float64(maxWidth)/ratio))
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst, nil
}
