package mandel

import (
	"errors"
	"fmt"
	"image"

	"github.com/klauspost/compress/zstd"
)

// ErrBadFrame is wrapped by errors about frames that do not decode into
// an image of their stated size.
var ErrBadFrame = errors.New("bad frame")

// Frame is a rendered image as it travels between endpoints.
// Pix holds the zstd compressed RGBA pixels, rows packed without padding.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// compressBound is the largest zstd output for n input bytes: incompressible
// data is stored in raw blocks, which cost a little more than n.
func compressBound(n int) int {
	return n + n>>8 + 1<<10
}

// MaxFrameBytes bounds the compressed pixels of any valid frame.
var MaxFrameBytes = compressBound(MaxSide * MaxSide * 4)

var (
	zenc = mustNewZstdEncoder()
	zdec = mustNewZstdDecoder()
)

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSide*MaxSide*4))
	if err != nil {
		panic(err)
	}
	return dec
}

// NewFrame compresses img. Sub images are repacked, so the frame always
// starts at the origin.
func NewFrame(img *image.RGBA) Frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return Frame{
		Width:  w,
		Height: h,
		Pix:    zenc.EncodeAll(packedPix(img), nil),
	}
}

// Image decompresses the frame.
func (f Frame) Image() (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 || f.Width > MaxSide || f.Height > MaxSide {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadFrame, f.Width, f.Height)
	}
	size := f.Width * f.Height * 4
	if len(f.Pix) > compressBound(size) {
		return nil, fmt.Errorf("%w: %d compressed bytes for %dx%d image", ErrBadFrame, len(f.Pix), f.Width, f.Height)
	}
	pix, err := zdec.DecodeAll(f.Pix, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrBadFrame, err)
	}
	if len(pix) != size {
		return nil, fmt.Errorf("%w: %d pixel bytes for %dx%d image", ErrBadFrame, len(pix), f.Width, f.Height)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}, nil
}

// packedPix returns the pixels of img without row padding.
func packedPix(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowLen := w * 4
	start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y)
	if img.Stride == rowLen {
		return img.Pix[start : start+rowLen*h]
	}
	pix := make([]byte, 0, rowLen*h)
	for y := range h {
		off := start + y*img.Stride
		pix = append(pix, img.Pix[off:off+rowLen]...)
	}
	return pix
}
