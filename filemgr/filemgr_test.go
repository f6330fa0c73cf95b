package filemgr

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"forkful/faults"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestPrepareImageKeepsSmallImages(t *testing.T) {
	out, err := PrepareImage(encodePNG(t, 100, 80))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	img, err := imaging.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Errorf("small image was resized to %v", img.Bounds())
	}
}

func TestPrepareImageDownscalesOversized(t *testing.T) {
	out, err := PrepareImage(encodePNG(t, MaxDim*2, 200))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	img, err := imaging.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != MaxDim {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), MaxDim)
	}
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	_, err := PrepareImage(strings.NewReader("definitely not an image"))
	if !faults.IsValidation(err) {
		t.Fatalf("want validation failure, got %v", err)
	}
}
