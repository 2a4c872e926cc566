package rl

import (
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotWinRates draws the rolling win rate of each training run as one line
// per strategy and saves the comparison to plotPath.
func PlotWinRates(plotPath string, names []string, reports []*TrainingReport) error {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	p := plot.New()
	p.Title.Text = "Comparison"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Win rate"
	for i := 0; i < len(names); i++ {
		epochs := reports[i].Epochs
		points := make(plotter.XYs, len(epochs))
		for j, e := range epochs {
			points[j] = plotter.XY{
				X: float64(e.Epoch),
				Y: e.WinRate,
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "win_rate.png"))
}

// PlotLosses draws the per-epoch training loss of each run.
func PlotLosses(plotPath string, names []string, reports []*TrainingReport) error {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	p := plot.New()
	p.Title.Text = "Comparison"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Loss"
	for i := 0; i < len(names); i++ {
		epochs := reports[i].Epochs
		points := make(plotter.XYs, len(epochs))
		for j, e := range epochs {
			points[j] = plotter.XY{
				X: float64(e.Epoch),
				Y: e.Loss,
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "loss.png"))
}
