package scarf

import (
	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path"
)

// Viewer is an interactive scarfplot window. The strip along the top is a
// time-window slider: drag to zoom the time axis to a selection, right
// click to reset. 'E' exports a PNG into ExportDir; 'Q' or Escape quits.
type Viewer struct {
	Figure    *plot.Plot
	DPI       int
	ExportDir string

	fullXMin float64
	fullXMax float64

	adjWidth  vg.Length
	adjHeight vg.Length

	windowStart, windowEnd float64 // selected time window, out of 1.0
	dragStart, dragEnd     float64 // in-progress selection, -1 when idle

	busy  bool
	ready chan image.Image
	img   image.Image
}

func NewViewer(p *plot.Plot, exportDir string) *Viewer {
	return &Viewer{
		Figure:      p,
		DPI:         128,
		ExportDir:   exportDir,
		fullXMin:    p.X.Min,
		fullXMax:    p.X.Max,
		windowStart: 0,
		windowEnd:   1,
		dragStart:   -1,
		dragEnd:     -1,
		ready:       make(chan image.Image),
	}
}

// applyWindow narrows the figure's time axis to the selected fraction of
// the full recording and forces a re-render.
func (v *Viewer) applyWindow() {
	span := v.fullXMax - v.fullXMin
	v.Figure.X.Min = v.fullXMin + span*v.windowStart
	v.Figure.X.Max = v.fullXMin + span*v.windowEnd
	v.img = nil
}

func (v *Viewer) genImage(w, h vg.Length) image.Image {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(v.DPI))
	v.Figure.Draw(draw.New(c))
	return c.Image()
}

func (v *Viewer) onReady(ready image.Image) {
	if !v.busy {
		panic("should be busy")
	}
	v.img = ready
	v.busy = false
}

func (v *Viewer) getImage(size image.Point) image.Image {
	wAdjusted := vg.Points(float64(size.X) * vg.Inch.Points() / float64(v.DPI))
	hAdjusted := vg.Points(float64(size.Y) * vg.Inch.Points() / float64(v.DPI))
	if v.img == nil {
		v.img = v.genImage(wAdjusted, hAdjusted)
		v.adjWidth = wAdjusted
		v.adjHeight = hAdjusted
	} else if v.adjWidth != wAdjusted || v.adjHeight != hAdjusted {
		if !v.busy {
			v.busy = true
			go func() {
				v.ready <- v.genImage(wAdjusted, hAdjusted)
			}()
			v.adjWidth = wAdjusted
			v.adjHeight = hAdjusted
		}
	}
	return v.img
}

var viewerTag = new(struct{})

func (v *Viewer) handleSlider(gtx layout.Context) {
	for _, ev := range gtx.Queue.Events(viewerTag) {
		x, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		frac := math.Max(0, math.Min(1, float64(x.Position.X)/float64(gtx.Constraints.Max.X)))
		switch x.Type {
		case pointer.Press:
			if x.Buttons.Contain(pointer.ButtonSecondary) {
				v.dragStart, v.dragEnd = -1, -1
				v.windowStart, v.windowEnd = 0, 1
				v.applyWindow()
			} else {
				v.dragStart, v.dragEnd = frac, -1
			}
		case pointer.Drag:
			if !x.Buttons.Contain(pointer.ButtonSecondary) {
				v.dragEnd = frac
			}
		case pointer.Release:
			if !x.Buttons.Contain(pointer.ButtonSecondary) {
				if v.dragEnd != -1 && v.dragEnd != v.dragStart {
					lo, hi := v.dragStart, v.dragEnd
					if hi < lo {
						lo, hi = hi, lo
					}
					// selection is relative to the current window
					span := v.windowEnd - v.windowStart
					v.windowStart, v.windowEnd = v.windowStart+span*lo, v.windowStart+span*hi
					v.applyWindow()
				}
				v.dragStart, v.dragEnd = -1, -1
			}
		}
	}
}

func fillRect(gtx layout.Context, min, max image.Point, c color.NRGBA) {
	clip.Rect{Min: min, Max: max}.Add(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func (v *Viewer) Layout(gtx layout.Context) layout.Dimensions {
	defer op.Save(gtx.Ops).Load()

	sliderY := 20
	if sliderY > gtx.Constraints.Max.Y/4 {
		sliderY = gtx.Constraints.Max.Y / 4
	}
	width := gtx.Constraints.Max.X

	base := op.Save(gtx.Ops)

	v.handleSlider(gtx)

	pointer.Rect(image.Rectangle{
		Max: image.Point{X: width, Y: sliderY},
	}).Add(gtx.Ops)
	pointer.InputOp{
		Tag:   viewerTag,
		Types: pointer.Press | pointer.Drag | pointer.Release,
	}.Add(gtx.Ops)

	// slider background, then the selected window over it
	fillRect(gtx, image.Point{}, image.Point{X: width, Y: sliderY}, color.NRGBA{192, 192, 192, 255})
	base.Load()
	fillRect(gtx,
		image.Point{X: int(float64(width) * v.windowStart)},
		image.Point{X: int(float64(width) * v.windowEnd), Y: sliderY},
		color.NRGBA{128, 128, 128, 255})

	if v.dragStart != -1 {
		base.Load()
		start, end := v.dragStart, v.dragEnd
		if end == -1 {
			end = math.Min(1, start+0.05)
			start = math.Max(0, start-0.05)
		}
		if end < start {
			start, end = end, start
		}
		fillRect(gtx,
			image.Point{X: int(float64(width) * start)},
			image.Point{X: int(float64(width) * end), Y: sliderY},
			color.NRGBA{192, 128, 128, 255})
	}

	base.Load()
	op.Offset(f32.Point{Y: float32(sliderY * 2)}).Add(gtx.Ops)

	imageSize := image.Point{X: width, Y: gtx.Constraints.Max.Y - sliderY*2}
	clip.Rect{Max: imageSize}.Add(gtx.Ops)
	paint.NewImageOp(v.getImage(imageSize)).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (v *Viewer) export() {
	if v.ExportDir == "" || v.img == nil {
		return
	}
	filepath := path.Join(v.ExportDir, "scarfplot.png")
	f, err := os.Create(filepath)
	if err != nil {
		log.Printf("export failed: %v", err)
		return
	}
	err = combineErrors(png.Encode(f, v.img), f.Close())
	if err != nil {
		log.Printf("export failed: %v", err)
		return
	}
	log.Printf("exported scarfplot to %s", filepath)
}

// Display opens the interactive viewer and blocks until it is closed.
func Display(p *plot.Plot) error {
	return DisplayExportable(p, "")
}

func DisplayExportable(p *plot.Plot, exportDir string) error {
	viewer := NewViewer(p, exportDir)

	go func() {
		win := app.NewWindow(
			app.Title("Scarfplot"),
			app.Size(
				unit.Px(1280),
				unit.Px(720),
			),
		)
		defer win.Close()

		for {
			select {
			case ready := <-viewer.ready:
				viewer.onReady(ready)
				win.Invalidate()
			case e := <-win.Events():
				switch e := e.(type) {
				case system.FrameEvent:
					ops := new(op.Ops)
					gtx := layout.NewContext(ops, e)
					layout.UniformInset(unit.Dp(30)).Layout(gtx, viewer.Layout)
					e.Frame(ops)
				case key.Event:
					switch e.Name {
					case "Q", key.NameEscape:
						win.Close()
					case "E":
						if e.State == key.Press {
							viewer.export()
						}
					}
				case system.DestroyEvent:
					os.Exit(0)
				}
			}
		}
	}()

	app.Main()
	return nil
}
