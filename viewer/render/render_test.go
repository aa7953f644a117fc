package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestAffineMatchesFrameApply(t *testing.T) {
	f := motion.Frame{TranslateX: 10, TranslateY: -4, Scale: 2.5, OriginX: 30, OriginY: 12}
	m := Affine(f, 5, 7)
	for _, p := range [][2]float64{{0, 0}, {30, 12}, {100, 3}} {
		wx, wy := f.Apply(p[0], p[1])
		gx := m[0]*p[0] + m[1]*p[1] + m[2]
		gy := m[3]*p[0] + m[4]*p[1] + m[5]
		if gx != wx+5 || gy != wy+7 {
			t.Fatalf("Affine(%v) = (%v, %v), want (%v, %v)", p, gx, gy, wx+5, wy+7)
		}
	}
}

func TestCanvasRenderPlacesImage(t *testing.T) {
	c := NewCanvas(solid(10, 10, red), 100, 100)
	c.SetTransform(motion.Frame{TranslateX: 40, TranslateY: 40, Scale: 2, OriginX: 5, OriginY: 5})
	out := c.Render()

	// Source spans [0,10) scaled 2x about (5,5), then moved by 40: [35,55).
	if got := out.RGBAAt(45, 45); got != red {
		t.Fatalf("pixel inside = %v, want red", got)
	}
	if got := out.RGBAAt(20, 20); got != colorBackground {
		t.Fatalf("pixel outside = %v, want background", got)
	}
	if got := out.RGBAAt(60, 45); got != colorBackground {
		t.Fatalf("pixel right of image = %v, want background", got)
	}
}

func TestCanvasSkipsNonPositiveScale(t *testing.T) {
	c := NewCanvas(solid(10, 10, red), 20, 20)
	c.SetTransform(motion.Frame{})
	if got := c.Render().RGBAAt(1, 1); got != colorBackground {
		t.Fatalf("pixel = %v, want background", got)
	}
}

func TestDrawHUDWritesText(t *testing.T) {
	dst := solid(200, 80, color.RGBA{A: 0xff})
	lines := HUDLines(motion.Frame{Scale: 2.5, OriginX: 1, OriginY: 2}, transform.Snapshot{Zoom: 1.5})
	if lines[0] != "zoom 1.50 -> 1.50" || lines[2] != "origin 1px 2px" {
		t.Fatalf("HUDLines() = %q", lines)
	}
	DrawHUD(dst, lines)

	lit := 0
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] == colorHUDFG.R {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("DrawHUD() drew no glyph pixels")
	}
	if w, h := HUDSize(lines); w <= 2*hudPad || h != 3*hudLineHeight+2*hudPad {
		t.Fatalf("HUDSize() = %d, %d", w, h)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(7, 3, red)); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(bytes.NewReader(buf.Bytes()), "noext")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if w, h := Size(img); w != 7 || h != 3 {
		t.Fatalf("Size() = %d x %d, want 7 x 3", w, h)
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("hello world, not an image")), "notes.txt"); err != ErrUnsupported {
		t.Fatalf("Decode() error = %v, want ErrUnsupported", err)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		head []byte
		path string
		want fileFormat
	}{
		{[]byte("BM......"), "", formatBMP},
		{[]byte("\x89PNG\r\n\x1a\n"), "", formatPNG},
		{[]byte{0xFF, 0xD8, 0xFF}, "", formatJPEG},
		{[]byte("GIF89a"), "", formatGIF},
		{[]byte("RIFF\x00\x00\x00\x00WEBP"), "", formatWebP},
		{[]byte{0, 0, 2}, "maps/zemljevid.TGA", formatTGA},
		{[]byte{0}, "dir.png/file", formatUnknown},
	}
	for _, tc := range cases {
		if got := detectFormat(tc.head, tc.path); got != tc.want {
			t.Fatalf("detectFormat(%q, %q) = %d, want %d", tc.head, tc.path, got, tc.want)
		}
	}
}

func TestWriteWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.webp")
	if err := WriteWebP(path, solid(8, 8, red)); err != nil {
		t.Fatalf("WriteWebP() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("output is not a WebP container")
	}
}

func TestOrientRotates(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	blue := color.RGBA{B: 0xff, A: 0xff}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(2, 1, blue)

	cases := []struct {
		o      int
		w, h   int
		redAt  image.Point
		blueAt image.Point
	}{
		{1, 3, 2, image.Pt(0, 0), image.Pt(2, 1)},
		{3, 3, 2, image.Pt(2, 1), image.Pt(0, 0)},
		{6, 2, 3, image.Pt(1, 0), image.Pt(0, 2)},
		{8, 2, 3, image.Pt(0, 2), image.Pt(1, 0)},
	}
	for _, tc := range cases {
		got := orient(src, tc.o)
		if w, h := Size(got); w != tc.w || h != tc.h {
			t.Fatalf("orient(%d) size = %dx%d, want %dx%d", tc.o, w, h, tc.w, tc.h)
		}
		rgba := got.(*image.RGBA)
		if c := rgba.RGBAAt(tc.redAt.X, tc.redAt.Y); c != red {
			t.Fatalf("orient(%d) at %v = %v, want red", tc.o, tc.redAt, c)
		}
		if c := rgba.RGBAAt(tc.blueAt.X, tc.blueAt.Y); c != blue {
			t.Fatalf("orient(%d) at %v = %v, want blue", tc.o, tc.blueAt, c)
		}
	}
}

func TestExifOrientationDefaultsToUpright(t *testing.T) {
	if got := exifOrientation(bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xD9})); got != 1 {
		t.Fatalf("exifOrientation() = %d, want 1", got)
	}
}
