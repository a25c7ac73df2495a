package predict

import (
	"math"
	"testing"

	"github.com/san-kum/projsim/internal/dynamo"
)

func TestAnalyticFortyFive(t *testing.T) {
	s := Analytic(dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20})

	expectedRange := 400.0 / dynamo.Gravity
	expectedTime := 2 * 20 * math.Sin(math.Pi/4) / dynamo.Gravity

	if math.Abs(s.Range-expectedRange) > 1e-9 {
		t.Errorf("expected range %.4f, got %.4f", expectedRange, s.Range)
	}
	if math.Abs(s.TimeOfFlight-expectedTime) > 1e-9 {
		t.Errorf("expected time %.4f, got %.4f", expectedTime, s.TimeOfFlight)
	}
	if math.Abs(s.Range-40.82) > 0.01 {
		t.Errorf("expected range ~40.82, got %.4f", s.Range)
	}
}

func TestPathAllAboveGround(t *testing.T) {
	for angle := 0.0; angle <= 90; angle += 7.5 {
		for _, speed := range []float64{0, 1, 12.5, 30} {
			for _, h := range []float64{0, 2, 30} {
				p := dynamo.LaunchParameters{AngleDegrees: angle, Speed: speed, PlatformHeight: h}
				path := Path(p)
				if len(path) == 0 {
					t.Fatalf("empty path for %+v", p)
				}
				for i, pt := range path {
					if pt.Y < 0 {
						t.Fatalf("sample %d below ground for %+v: %+v", i, p, pt)
					}
					if !pt.IsFinite() {
						t.Fatalf("sample %d not finite for %+v", i, p)
					}
				}
				if path[0].X != 0 || path[0].Y != h {
					t.Errorf("path must start at launch point, got %+v", path[0])
				}
			}
		}
	}
}

func TestPathEndsNearAnalyticRange(t *testing.T) {
	p := dynamo.LaunchParameters{AngleDegrees: 45, Speed: 20}
	path := Path(p)
	last := path[len(path)-1]
	s := Analytic(p)

	v0x := 20 * math.Cos(math.Pi/4)
	if s.Range-last.X > v0x*SampleInterval+1e-9 {
		t.Errorf("last sample %.4f too far from range %.4f", last.X, s.Range)
	}
	if last.X > s.Range {
		t.Errorf("last sample %.4f beyond range %.4f", last.X, s.Range)
	}
}

func TestPathZeroSpeed(t *testing.T) {
	path := Path(dynamo.LaunchParameters{AngleDegrees: 30, Speed: 0, PlatformHeight: 5})
	if len(path) != 1 {
		t.Fatalf("expected single point, got %d", len(path))
	}
	if path[0] != (dynamo.Vec2{X: 0, Y: 5}) {
		t.Errorf("expected launch point, got %+v", path[0])
	}
}

func TestPathVertical(t *testing.T) {
	path := Path(dynamo.LaunchParameters{AngleDegrees: 90, Speed: 10, PlatformHeight: 1})
	if len(path) < 2 {
		t.Fatalf("expected vertical path, got %d points", len(path))
	}
	for _, pt := range path {
		if pt.X != 0 {
			t.Fatalf("expected x = 0 for vertical shot, got %f", pt.X)
		}
	}
}

func TestPathClampsAngle(t *testing.T) {
	a := Path(dynamo.LaunchParameters{AngleDegrees: 135, Speed: 10})
	b := Path(dynamo.LaunchParameters{AngleDegrees: 90, Speed: 10})
	if len(a) != len(b) {
		t.Errorf("expected clamped angle to match 90°, got %d vs %d points", len(a), len(b))
	}
}

func TestPathInvalid(t *testing.T) {
	if Path(dynamo.LaunchParameters{AngleDegrees: math.NaN(), Speed: 10}) != nil {
		t.Error("expected nil path for NaN angle")
	}
	if s := Analytic(dynamo.LaunchParameters{Speed: -1}); s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
