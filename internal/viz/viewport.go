package viz

import (
	"math"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Viewport maps world metres onto canvas dots with the ground along the
// bottom row and the launch platform at the left edge.
type Viewport struct {
	MaxX, MaxY float64
	DotsX      int
	DotsY      int
}

const (
	minSceneX = 10.0
	minSceneY = 5.0
)

// Fit returns a viewport that holds every point in paths and the platform
// with some headroom above the apex.
func Fit(c *Canvas, platform float64, paths ...[]dynamo.Vec2) Viewport {
	maxX, maxY := minSceneX, math.Max(minSceneY, platform)
	for _, path := range paths {
		for _, p := range path {
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return Viewport{
		MaxX:  maxX * 1.08,
		MaxY:  maxY * 1.15,
		DotsX: c.Width * 2,
		DotsY: c.Height * 4,
	}
}

// Project converts a world position to dot coordinates. Points below the
// ground clamp to the bottom row.
func (v Viewport) Project(p dynamo.Vec2) (int, int) {
	x := int(math.Round(p.X / v.MaxX * float64(v.DotsX-1)))
	y := int(math.Round((1 - math.Max(p.Y, 0)/v.MaxY) * float64(v.DotsY-1)))
	return x, y
}

// DrawScene renders ground, platform, predicted and flown paths and the
// body onto c.
func DrawScene(c *Canvas, v Viewport, platform float64, predicted, path []dynamo.Vec2, body *dynamo.Vec2) {
	c.Clear()

	ground := v.DotsY - 1
	c.DrawLine(0, ground, v.DotsX-1, ground, LayerGround)
	if platform > 0 {
		_, top := v.Project(dynamo.Vec2{X: 0, Y: platform})
		c.DrawLine(0, top, 0, ground, LayerGround)
		c.DrawLine(0, top, 2, top, LayerGround)
	}

	// Every other predicted sample gives a dotted line.
	for i := 0; i+1 < len(predicted); i += 2 {
		x0, y0 := v.Project(predicted[i])
		x1, y1 := v.Project(predicted[i+1])
		c.DrawLine(x0, y0, x1, y1, LayerPredicted)
	}

	for i := 0; i+1 < len(path); i++ {
		x0, y0 := v.Project(path[i])
		x1, y1 := v.Project(path[i+1])
		c.DrawLine(x0, y0, x1, y1, LayerPath)
	}

	if body != nil {
		x, y := v.Project(*body)
		c.DrawDisc(x, y, 1, LayerBody)
	}
}
