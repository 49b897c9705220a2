package scarf

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
)

// Band is the drawable form of one run: a filled rectangle from Start to
// End at the owning row's vertical extent.
type Band struct {
	Start float64
	End   float64
	Color color.RGBA
}

// Row draws one labeling as a strip of borderless bands between YMin and
// YMax in data coordinates. Bands in a row partition its time span, so a
// row reads as one continuous scarf; adjacent bands touch exactly at their
// shared boundary and are never outlined.
type Row struct {
	Bands []Band
	YMin  float64
	YMax  float64
}

var _ plot.Plotter = &Row{}

func (r *Row) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	yMin, yMax := trY(r.YMin), trY(r.YMax)
	for _, band := range r.Bands {
		if band.Start == band.End {
			// zero-width band for a run holding only the final sample
			continue
		}
		xStart, xEnd := trX(band.Start), trX(band.End)
		pts := []vg.Point{
			{X: xStart, Y: yMin},
			{X: xEnd, Y: yMin},
			{X: xEnd, Y: yMax},
			{X: xStart, Y: yMax},
		}
		c.FillPolygon(band.Color, c.ClipPolygonXY(pts))
	}
}

type bandconv Row

func (r *bandconv) Len() int {
	return len(r.Bands) * 2
}

func (r *bandconv) XY(i int) (x, y float64) {
	if i < len(r.Bands) {
		return r.Bands[i].Start, r.YMin
	} else {
		i -= len(r.Bands)
	}
	if i < len(r.Bands) {
		return r.Bands[i].End, r.YMax
	} else {
		panic("invalid index")
	}
}

func (r *Row) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange((*bandconv)(r))
}
