package maze

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Renderer draws the maze and the agent's trail. The environment calls Reset
// when a new game starts with display enabled and Draw after every move.
type Renderer interface {
	Reset(grid Grid, start, exit Position)
	Draw(previous, current Position)
}

// NopRenderer draws nothing.
type NopRenderer struct{}

func (NopRenderer) Reset(Grid, Position, Position) {}
func (NopRenderer) Draw(Position, Position)        {}

// PlotRenderer records the agent's trail and renders the finished game to a
// PNG image.
type PlotRenderer struct {
	grid  Grid
	start Position
	exit  Position
	trail []Position
}

var _ Renderer = &PlotRenderer{}

func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{}
}

func (p *PlotRenderer) Reset(grid Grid, start, exit Position) {
	p.grid = grid
	p.start = start
	p.exit = exit
	p.trail = []Position{start}
}

func (p *PlotRenderer) Draw(previous, current Position) {
	p.trail = append(p.trail, current)
}

// mazeGrid adapts a Grid to the heat map data interface. The grid row 0 is
// drawn at the top of the image.
type mazeGrid struct {
	grid Grid
}

var _ plotter.GridXYZ = &mazeGrid{}

func (m *mazeGrid) Dims() (int, int) { return m.grid.Cols(), m.grid.Rows() }

func (m *mazeGrid) Z(c, r int) float64 {
	return float64(m.grid.At(Position{Col: c, Row: m.grid.Rows() - 1 - r}))
}

func (m *mazeGrid) X(c int) float64 { return float64(c) }
func (m *mazeGrid) Y(r int) float64 { return float64(r) }

func (m *mazeGrid) Min() float64 { return 0 }
func (m *mazeGrid) Max() float64 { return 1 }

// wallPalette colors empty cells white and walls gray.
type wallPalette struct{}

func (wallPalette) Colors() []color.Color {
	return []color.Color{
		color.White,
		color.Gray{Y: 0x50},
	}
}

// xy converts a maze position to plot coordinates.
func (p *PlotRenderer) xy(pos Position) plotter.XY {
	return plotter.XY{
		X: float64(pos.Col),
		Y: float64(p.grid.Rows() - 1 - pos.Row),
	}
}

// Save writes the maze with the recorded trail to a PNG file.
func (p *PlotRenderer) Save(file string) error {
	plt := plot.New()
	plt.HideAxes()

	plt.Add(plotter.NewHeatMap(&mazeGrid{grid: p.grid}, wallPalette{}))

	trail := make(plotter.XYs, len(p.trail))
	for i, pos := range p.trail {
		trail[i] = p.xy(pos)
	}
	line, err := plotter.NewLine(trail)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	line.Width = vg.Points(2)
	plt.Add(line)

	markers := []struct {
		pos Position
		col color.Color
	}{
		{p.start, color.RGBA{R: 255, A: 255}},
		{p.exit, color.RGBA{G: 200, A: 255}},
	}
	for _, m := range markers {
		s, err := plotter.NewScatter(plotter.XYs{p.xy(m.pos)})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = m.col
		s.GlyphStyle.Radius = vg.Points(6)
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		plt.Add(s)
	}

	return plt.Save(6*vg.Inch, 6*vg.Inch, file)
}
