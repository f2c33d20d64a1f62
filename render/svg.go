package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// SVG is a Surface that records shapes as SVG elements in paint order.
type SVG struct {
	width, height float64
	elements      []string
}

func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

func (s *SVG) Resize(w, h float64) {
	s.width, s.height = w, h
	s.elements = nil
}

func (s *SVG) Clear() {
	s.elements = s.elements[:0]
}

func (s *SVG) FillRect(x, y, w, h float64, c color.Color) {
	s.elements = append(s.elements, fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`,
		x, y, w, h, fill(c)))
}

func (s *SVG) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	s.elements = append(s.elements, fmt.Sprintf(`<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" %s/>`,
		cx, cy, rx, ry, fill(c)))
}

func (s *SVG) FillPolygon(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	s.elements = append(s.elements, fmt.Sprintf(`<polygon points="%s" %s/>`,
		strings.Join(coords, " "), fill(c)))
}

func (s *SVG) StrokeLine(x0, y0, x1, y1 float64, c color.Color) {
	s.elements = append(s.elements, fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`,
		x0, y0, x1, y1, hex(c)))
}

// Len is the number of recorded elements.
func (s *SVG) Len() int {
	return len(s.elements)
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f">
`, s.width, s.height, s.width, s.height))
	for _, e := range s.elements {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func fill(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf(`fill="%s"`, hex(c))
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex(c), float64(n.A)/0xff)
}
