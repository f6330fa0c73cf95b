// Package filemgr prepares locally selected image files for upload.
package filemgr

import (
	"bytes"
	"io"

	"github.com/disintegration/imaging"

	"forkful/faults"
)

// MaxDim is the largest edge length sent to the media endpoint; bigger
// images are downscaled before upload.
const MaxDim = 1600

const jpegQuality = 85

// PrepareImage decodes src, downscales it if oversized and re-encodes it as
// JPEG. An unreadable or non-image file is a validation failure, caught
// before the upload request goes out.
func PrepareImage(src io.Reader) (io.Reader, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, faults.Validationf("selected file is not a supported image: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDim || bounds.Dy() > MaxDim {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, MaxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, MaxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, faults.Validationf("re-encode image: %v", err)
	}
	return &buf, nil
}
