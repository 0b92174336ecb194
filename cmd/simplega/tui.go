package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/parameter"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// dashboard redraws a live run summary after every generation
type dashboard struct {
	screen      tcell.Screen
	fitness     genetic.FitnessFunction
	generations int

	mu      sync.Mutex
	maxSeen []float64
}

var _ genetic.Observer = (*dashboard)(nil)

func newDashboard(screen tcell.Screen, fn genetic.FitnessFunction, generations int) *dashboard {
	return &dashboard{
		screen:      screen,
		fitness:     fn,
		generations: generations,
	}
}

func (d *dashboard) ObserveGeneration(generation int, pop *genetic.Population) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.maxSeen = append(d.maxSeen, pop.Max())
	d.draw(d.lines(generation, pop))
}

// lines renders the dashboard text for one generation
func (d *dashboard) lines(generation int, pop *genetic.Population) []string {
	stats := pop.Stats()
	out := []string{
		fmt.Sprintf("simplega  generation %d/%d  %s", generation, d.generations, progressBar(generation, d.generations, 30)),
		"",
		fmt.Sprintf("max %.6f   mean %.6f   min %.6f", stats.Max, stats.Mean, stats.Min),
		fmt.Sprintf("stddev %.6f   diversity %.4f   size %d", stats.StdDev, stats.Diversity, stats.Size),
		"",
		"best max " + sparkline(d.maxSeen, 60),
		"",
		fmt.Sprintf("Top %d", parameter.GAReportTopCount),
	}
	for _, ind := range pop.TopN(parameter.GAReportTopCount) {
		out = append(out, fmt.Sprintf("  %s %v %.6f", ind.BitString(), d.fitness.Decode(ind), ind.Fitness()))
	}
	out = append(out, "", "q / Esc to stop after this generation")
	return out
}

func (d *dashboard) draw(lines []string) {
	d.screen.Clear()
	width, height := d.screen.Size()
	style := tcell.StyleDefault
	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			d.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	d.screen.Show()
}

// listen cancels the run on q, Esc or Ctrl-C; it returns once the screen is finalized
func (d *dashboard) listen(cancel context.CancelFunc) {
	for {
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				cancel()
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

func progressBar(done, total, width int) string {
	filled := width
	if total > 0 {
		filled = done * width / total
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '·'
		}
	}
	return "[" + string(bar) + "]"
}

// sparkline scales the last width values between their min and max
func sparkline(values []float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, len(values))
	top := len(sparkRunes) - 1
	for i, v := range values {
		level := top
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(top))
		}
		out[i] = sparkRunes[level]
	}
	return string(out)
}
