// Package imagestore keeps profile pictures as PNG files in an app-private
// directory and renders the circular avatar shown next to the profile form.
package imagestore

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// FilePrefix starts every stored picture name, followed by the capture time in unix milliseconds.
	FilePrefix = "profile_image_"
	// FileExt is the extension of stored pictures; PNG is the only encoding written.
	FileExt = ".png"

	dirPerm  = 0o750
	filePerm = 0o640

	// maxNameAttempts bounds the search for a free file name within the same millisecond.
	maxNameAttempts = 1000
)

var (
	// ErrDecode is returned when the uploaded bytes are not a supported image.
	ErrDecode = errors.New("failed to decode image")
	// ErrNoFreeName is returned when no unused file name could be found.
	ErrNoFreeName = errors.New("no free image file name")
)

// Store writes pictures below Dir.
type Store struct {
	dir string
	now func() time.Time
}

// New returns a Store writing to dir. dir is made absolute so stored paths
// stay valid regardless of the working directory.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("image dir %s: %w", dir, err)
	}

	return &Store{dir: abs, now: time.Now}, nil
}

// Dir returns the absolute image directory.
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns the file name for a picture captured at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s%d%s", FilePrefix, t.UnixMilli(), FileExt)
}

// SaveFrom decodes a png, jpeg or gif image from r and stores it as PNG.
func (s *Store) SaveFrom(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return s.Save(img)
}

// Save encodes img as PNG into a new file named by the current time and
// returns its absolute path. The directory is created on demand.
func (s *Store) Save(img image.Image) (string, error) {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	f, path, err := s.create()
	if err != nil {
		return "", err
	}

	if err = png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// create opens a new file, moving one millisecond forward while the name is taken.
func (s *Store) create() (*os.File, string, error) {
	t := s.now()

	for range maxNameAttempts {
		path := filepath.Join(s.dir, FileName(t))

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if err == nil {
			return f, path, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}

		t = t.Add(time.Millisecond)
	}

	return nil, "", ErrNoFreeName
}

// Load decodes the picture stored at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the profile record
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return img, nil
}

// circle is an alpha mask, opaque inside the circle of radius r centred at (r, r).
type circle struct {
	r float64
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	d := int(2 * c.r)
	return image.Rect(0, 0, d, d)
}

func (c *circle) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - c.r
	dy := float64(y) + 0.5 - c.r

	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{A: 255}
	}

	return color.Alpha{}
}

// Rounded returns a square image with the side of the shorter edge of img,
// showing its top-left square through a circular mask. Pixels outside the
// circle are fully transparent.
func Rounded(img image.Image) *image.RGBA {
	b := img.Bounds()

	edge := min(b.Dx(), b.Dy())
	out := image.NewRGBA(image.Rect(0, 0, edge, edge))

	if edge == 0 {
		return out
	}

	mask := &circle{r: float64(edge) / 2}
	draw.DrawMask(out, out.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)

	return out
}

// WriteRounded writes the rounded rendition of the picture at path as PNG to w.
func WriteRounded(w io.Writer, path string) error {
	img, err := Load(path)
	if err != nil {
		return err
	}

	if err = png.Encode(w, Rounded(img)); err != nil {
		return fmt.Errorf("encode rounded %s: %w", path, err)
	}

	return nil
}

// PlaceholderColor fills the default avatar shown while no picture is set.
var PlaceholderColor = color.RGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff}

// Placeholder returns the default avatar: a grey disk of the given diameter.
func Placeholder(size int) *image.RGBA {
	src := image.NewUniform(PlaceholderColor)
	full := image.Rectangle{Max: image.Point{X: size, Y: size}}

	return Rounded(&boundedUniform{Uniform: src, r: full})
}

// boundedUniform gives an image.Uniform finite bounds.
type boundedUniform struct {
	*image.Uniform
	r image.Rectangle
}

func (b *boundedUniform) Bounds() image.Rectangle {
	return b.r
}
