package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/projsim/internal/dynamo"
)

const (
	predictedColor = "#5f87ff"
	actualColor    = "#ffaf00"
	groundColor    = "#444444"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(paths ...[]dynamo.Vec2) bounds {
	// The launch point and the ground are always in view.
	b := bounds{minX: 0, maxX: 0, minY: 0, maxY: 0}
	for _, path := range paths {
		for _, p := range path {
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.05
	b.maxY += rangeY * 0.1
	return b
}

func (b bounds) project(p dynamo.Vec2, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

func writePath(sb *strings.Builder, b bounds, points []dynamo.Vec2, width, height int, stroke, extra string) {
	if len(points) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, stroke, extra)
	for i, p := range points {
		x, y := b.project(p, width, height)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

// TrajectorySVG draws the predicted path dashed and the flown path solid,
// over the ground line, with a marker where the flown path ends. Returns
// "" when there is nothing to draw.
func TrajectorySVG(predicted, actual []dynamo.Vec2, width, height int) string {
	if len(predicted) < 2 && len(actual) < 2 {
		return ""
	}
	b := boundsOf(predicted, actual)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	gx0, gy := b.project(dynamo.Vec2{X: b.minX, Y: 0}, width, height)
	gx1, _ := b.project(dynamo.Vec2{X: b.maxX, Y: 0}, width, height)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, gx0, gy, gx1, gy, groundColor)

	writePath(&sb, b, predicted, width, height, predictedColor, ` stroke-dasharray="4 3"`)
	writePath(&sb, b, actual, width, height, actualColor, "")

	if len(actual) > 0 {
		x, y := b.project(actual[len(actual)-1], width, height)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, actualColor)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
