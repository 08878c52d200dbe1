package preview

import (
	"bytes"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Thumbnail renders a raster image into at most cols x rows terminal cells
// using upper half blocks, so each cell carries two vertical pixels.
// It returns "" when data is not a decodable image.
func Thumbnail(data []byte, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), cols, rows*2)
	if w == 0 || h == 0 {
		return ""
	}
	if h%2 == 1 {
		h++
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := hex(dst.At(x, y))
			bottom := hex(dst.At(x, y+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y+2 < h {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// fit scales (w, h) down to fit inside (maxW, maxH) keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	rw := float64(maxW) / float64(w)
	rh := float64(maxH) / float64(h)
	r := rw
	if rh < r {
		r = rh
	}
	nw, nh := int(float64(w)*r), int(float64(h)*r)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func hex(c color.Color) string {
	const digits = "0123456789abcdef"
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{rgba.R, rgba.G, rgba.B} {
		buf[1+i*2] = digits[v>>4]
		buf[2+i*2] = digits[v&0x0f]
	}
	return string(buf)
}
