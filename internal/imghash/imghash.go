// Package imghash computes perceptual average hashes of images. Two images
// whose hashes differ in few bits look alike, even after resizing or mild
// recompression.
package imghash

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoding.
	_ "image/jpeg" // Register JPEG decoding.
	_ "image/png"  // Register PNG decoding.
	"math/bits"
	"os"
	"strconv"

	_ "golang.org/x/image/bmp"  // Register BMP decoding.
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoding.
)

// Side is the width and height of the thumbnail a hash is computed from.
const Side = 8

// Bits is the number of bits in a Hash.
const Bits = Side * Side

// Hash is a 64-bit average hash. Bit 63 corresponds to the top-left
// thumbnail pixel; bits then run down each column before moving right.
type Hash uint64

// String returns the hash as 16 hex digits.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// ParseHash parses the output of Hash.String.
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("imghash: parse %q: %w", s, err)
	}
	return Hash(v), nil
}

// Distance returns the Hamming distance between h and other.
func (h Hash) Distance(other Hash) int {
	return bits.OnesCount64(uint64(h ^ other))
}

// Similarity returns the fraction of matching bits, from 0 (inverse) to 1
// (identical).
func Similarity(a, b Hash) float64 {
	return 1 - float64(a.Distance(b))/Bits
}

// Compute hashes img. It also returns the mask: the Side×Side thumbnail
// with pixels above the mean painted black and the rest white.
func Compute(img image.Image) (Hash, *image.Gray) {
	thumb := image.NewRGBA(image.Rect(0, 0, Side, Side))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Src, nil)

	var grey [Side][Side]int
	sum := 0
	for x := 0; x < Side; x++ {
		for y := 0; y < Side; y++ {
			grey[x][y] = greyLevel(thumb.RGBAAt(x, y))
			sum += grey[x][y]
		}
	}
	mean := sum / Bits

	var h Hash
	mask := image.NewGray(image.Rect(0, 0, Side, Side))
	bit := Bits - 1
	for x := 0; x < Side; x++ {
		for y := 0; y < Side; y++ {
			if grey[x][y] > mean {
				h |= 1 << bit
				mask.SetGray(x, y, color.Gray{Y: 0})
			} else {
				mask.SetGray(x, y, color.Gray{Y: 0xff})
			}
			bit--
		}
	}
	return h, mask
}

// greyLevel projects c onto the grey axis r = g = b, which reduces to the
// channel mean.
func greyLevel(c color.RGBA) int {
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// Open decodes the image file at path and hashes it.
func Open(path string) (Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("imghash: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("imghash: decode %s: %w", path, err)
	}
	h, _ := Compute(img)
	return h, nil
}

// CompareFiles hashes both files and returns their similarity.
func CompareFiles(pathA, pathB string) (float64, error) {
	a, err := Open(pathA)
	if err != nil {
		return 0, err
	}
	b, err := Open(pathB)
	if err != nil {
		return 0, err
	}
	return Similarity(a, b), nil
}
