package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/clock"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
)

const (
	width  = 72
	height = 22

	angleStep  = 1.0
	speedStep  = 1.0
	heightStep = 1.0
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live view. The session is shared by pointer so value copies
// made by Bubble Tea all drive the same flight.
type Model struct {
	session  *flight.Session
	specs    []catalog.Spec
	selected int
	params   dynamo.LaunchParameters
	clock    *clock.Clock
	canvas   *Canvas
	theme    Theme
	fps      int
	log      zerolog.Logger
	err      error
}

type ModelOption func(*Model)

func WithFrameRate(fps int) ModelOption {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

func WithTheme(name string) ModelOption {
	return func(m *Model) {
		m.theme = GetTheme(name)
	}
}

func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.log = l
	}
}

// NewModel starts with projectile selected, falling back to the first
// catalog entry when it is unknown.
func NewModel(s *flight.Session, cat *catalog.Catalog, projectile string, params dynamo.LaunchParameters, opts ...ModelOption) Model {
	m := Model{
		session: s,
		specs:   cat.Specs(),
		params:  params.Clamped(),
		clock:   clock.New(),
		canvas:  NewCanvas(width, height),
		theme:   ThemeCyberpunk,
		fps:     60,
		log:     zerolog.Nop(),
	}
	for i, spec := range m.specs {
		if spec.ID == projectile {
			m.selected = i
		}
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

func (m Model) Projectile() catalog.Spec { return m.specs[m.selected] }

func (m Model) Params() dynamo.LaunchParameters { return m.params }

// Update handles input events and advances the flight.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.session.Reset()
			return m, tea.Quit
		case " ":
			flying := m.session.State() == dynamo.Flying
			m.err = m.session.Launch(m.Projectile(), m.params)
			if !flying {
				m.clock.Reset()
			}
		case "r":
			m.session.Reset()
			m.clock.Reset()
			m.err = nil
		case "s":
			m.params.SlowMotion = !m.params.SlowMotion
		case "a":
			m.params.AirResistance = !m.params.AirResistance
		case "left", "h":
			m.params.Speed = clamp(m.params.Speed-speedStep, dynamo.MinSpeed, dynamo.MaxSpeed)
		case "right", "l":
			m.params.Speed = clamp(m.params.Speed+speedStep, dynamo.MinSpeed, dynamo.MaxSpeed)
		case "up", "k":
			m.params.AngleDegrees = clamp(m.params.AngleDegrees+angleStep, dynamo.MinAngle, dynamo.MaxAngle)
		case "down", "j":
			m.params.AngleDegrees = clamp(m.params.AngleDegrees-angleStep, dynamo.MinAngle, dynamo.MaxAngle)
		case "+", "=":
			m.params.PlatformHeight = clamp(m.params.PlatformHeight+heightStep, 0, dynamo.MaxHeight)
		case "-", "_":
			m.params.PlatformHeight = clamp(m.params.PlatformHeight-heightStep, 0, dynamo.MaxHeight)
		case "tab":
			m.selected = (m.selected + 1) % len(m.specs)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		}
	case TickMsg:
		dt := m.clock.Sample(time.Time(msg))
		if err := m.session.Tick(dt); err != nil {
			m.log.Error().Err(err).Msg("tick failed")
			m.err = err
			m.session.Reset()
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// View renders the TUI interface.
func (m Model) View() string {
	preview := m.session.Preview(m.params)
	sn := m.session.Snapshot()

	platform := m.params.PlatformHeight
	if sn.State != dynamo.Idle {
		platform = sn.Params.PlatformHeight
	}
	var body *dynamo.Vec2
	if sn.State != dynamo.Idle {
		pos := sn.Kinematics.Position
		body = &pos
	}

	spec := m.Projectile()
	if sn.State != dynamo.Idle {
		spec = sn.Projectile
	}

	v := Fit(m.canvas, platform, preview, sn.Path)
	DrawScene(m.canvas, v, platform, preview, sn.Path, body)
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.Styles(spec.Color)))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.stats(sn)))
}

func (m Model) stats(sn flight.Snapshot) string {
	var s strings.Builder
	spec := m.Projectile()

	s.WriteString(headerStyle.Render(strings.ToUpper(spec.Emoji+" "+spec.Name)) + "\n")
	s.WriteString(status(sn.State) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("Angle", fmt.Sprintf("%s %4.0f°", ProgressBar(m.params.AngleDegrees/dynamo.MaxAngle, 10), m.params.AngleDegrees))
	row("Speed", fmt.Sprintf("%s %4.0f m/s", ProgressBar(m.params.Speed/dynamo.MaxSpeed, 10), m.params.Speed))
	row("Height", fmt.Sprintf("%s %4.0f m", ProgressBar(m.params.PlatformHeight/dynamo.MaxHeight, 10), m.params.PlatformHeight))
	row("Air", Toggle(m.params.AirResistance))
	row("Slow-mo", Toggle(m.params.SlowMotion))
	s.WriteString("\n")

	if sn.State != dynamo.Idle {
		k := sn.Kinematics
		row("Time", fmt.Sprintf("%.2fs", k.Elapsed))
		row("Position", fmt.Sprintf("(%.1f, %.1f) m", k.Position.X, k.Position.Y))
		row("Velocity", fmt.Sprintf("(%.1f, %.1f) m/s", k.Velocity.X, k.Velocity.Y))
	}
	if r := sn.Result; r != nil {
		row("Range", fmt.Sprintf("%.2f m", r.Range))
		row("Max height", fmt.Sprintf("%.2f m", r.MaxHeight))
		row("Flight", fmt.Sprintf("%.2f s", r.TimeOfFlight))
		if loss, ok := sn.Metrics["energy_loss"]; ok {
			row("Drag loss", fmt.Sprintf("%.1f%%", loss*100))
		}
	}

	if heights := heightSeries(sn.Path, 30); len(heights) > 1 {
		chart := asciigraph.Plot(heights, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Height (m)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Launch R:Reset Q:Quit\n←→:Speed ↑↓:Angle +-:Height\nA:Air S:Slow Tab:Ball T:Theme"))
	return s.String()
}

func status(st dynamo.FlightState) string {
	switch st {
	case dynamo.Flying:
		return StatusFlying.Render("FLYING")
	case dynamo.Landed:
		return StatusLanded.Render("LANDED")
	default:
		return StatusIdle.Render("READY")
	}
}

// heightSeries downsamples the y values of path to at most n points.
func heightSeries(path []dynamo.Vec2, n int) []float64 {
	if len(path) == 0 {
		return nil
	}
	step := max(1, len(path)/n)
	out := make([]float64, 0, n+1)
	for i := 0; i < len(path); i += step {
		out = append(out, math.Max(path[i].Y, 0))
	}
	if last := path[len(path)-1].Y; (len(path)-1)%step != 0 {
		out = append(out, math.Max(last, 0))
	}
	return out
}
