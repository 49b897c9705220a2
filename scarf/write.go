package scarf

import (
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/kballard/go-shellquote"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
)

func WritePlot(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

func combineErrors(errors ...error) (err error) {
	for _, e := range errors {
		switch {
		case e == nil:
			// ignore
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}

func WriteClosePlot(p *plot.Plot, width, height vg.Length, output io.WriteCloser, format string) (err error) {
	defer func() {
		e := output.Close()
		err = combineErrors(err, e)
	}()
	return WritePlot(p, width, height, output, format)
}

func SavePlot(p *plot.Plot, width, height vg.Length, path string, format string) error {
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return WriteClosePlot(p, width, height, output, format)
}

// DisplayPlotExternal renders the figure to a temporary PNG and hands it to
// the viewer command, e.g. "xdg-open" or "feh -F". The command may carry
// quoted arguments; the image path is appended as the final argument.
func DisplayPlotExternal(p *plot.Plot, width, height vg.Length, viewer string) (err error) {
	argv, err := shellquote.Split(viewer)
	if err != nil {
		return fmt.Errorf("invalid viewer command %q: %v", viewer, err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("empty viewer command")
	}
	f, err := ioutil.TempFile("", "scarf-*.png")
	if err != nil {
		return err
	}
	defer func() {
		e := os.Remove(f.Name())
		err = combineErrors(err, e)
	}()
	if err := WriteClosePlot(p, width, height, f, "png"); err != nil {
		return err
	}
	argv = append(argv, f.Name())
	return exec.Command(argv[0], argv[1:]...).Run()
}
