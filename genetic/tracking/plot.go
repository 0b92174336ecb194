package tracking

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/simplega/genetic"
)

// WriteFitnessPlot draws max, mean and min fitness per generation; the image
// format follows the extension of path (png, svg, pdf)
func WriteFitnessPlot(history []genetic.Stats, title, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: no generations to plot", genetic.ErrInvalidArgument)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	maxPts := make(plotter.XYs, len(history))
	meanPts := make(plotter.XYs, len(history))
	minPts := make(plotter.XYs, len(history))
	for i, s := range history {
		x := float64(s.Generation)
		maxPts[i] = plotter.XY{X: x, Y: s.Max}
		meanPts[i] = plotter.XY{X: x, Y: s.Mean}
		minPts[i] = plotter.XY{X: x, Y: s.Min}
	}

	series := []struct {
		name   string
		points plotter.XYs
		color  color.Color
	}{
		{"max", maxPts, color.RGBA{R: 200, G: 30, B: 30, A: 255}},
		{"mean", meanPts, color.RGBA{R: 30, G: 90, B: 200, A: 255}},
		{"min", minPts, color.RGBA{R: 120, G: 120, B: 120, A: 255}},
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.points)
		if err != nil {
			return fmt.Errorf("plot %s: %w", s.name, err)
		}
		line.Color = s.color
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}
	return nil
}
