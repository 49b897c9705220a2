// Package dataset reads and writes gaze trials as CSV files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"github.com/gazelab/gazeline/gaze"
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Trial is one gaze recording: timestamps in milliseconds plus pixel
// coordinates, and reference labels when the file carried a label column.
type Trial struct {
	Name   string
	Times  []float64
	X      []float64
	Y      []float64
	Labels []gaze.EventLabel
}

// LoadTrial reads one trial CSV. The first row must be a `t,x,y` or
// `t,x,y,label` header. Missing coordinates may be written as empty cells
// or as "nan" in any casing; timestamps must be real numbers.
func LoadTrial(path string) (*Trial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	cr := csv.NewReader(f)
	firstRow, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %v", path, err)
	}
	hasLabels := len(firstRow) == 4 && firstRow[3] == "label"
	if !hasLabels && len(firstRow) != 3 {
		return nil, fmt.Errorf("invalid first row: %v", firstRow)
	}
	if firstRow[0] != "t" || firstRow[1] != "x" || firstRow[2] != "y" {
		return nil, fmt.Errorf("invalid first row: %v", firstRow)
	}
	trial := &Trial{Name: trialName(path)}
	rowNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return trial, nil
		} else if err != nil {
			return nil, err
		}
		rowNum += 1
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil || math.IsNaN(t) {
			return nil, fmt.Errorf("row %d of %s: invalid timestamp %q", rowNum, path, row[0])
		}
		x, err := parseCoord(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: invalid x coordinate %q", rowNum, path, row[1])
		}
		y, err := parseCoord(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: invalid y coordinate %q", rowNum, path, row[2])
		}
		trial.Times = append(trial.Times, t)
		trial.X = append(trial.X, x)
		trial.Y = append(trial.Y, y)
		if hasLabels {
			label, err := gaze.ParseEventLabel(row[3])
			if err != nil {
				return nil, fmt.Errorf("row %d of %s: %v", rowNum, path, err)
			}
			trial.Labels = append(trial.Labels, label)
		}
	}
}

func parseCoord(cell string) (float64, error) {
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

func trialName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SaveLabels writes a `t,label` CSV pairing the trial's timestamps with a
// detector's labeling.
func SaveLabels(path string, trial *Trial, labels []gaze.EventLabel) (errOut error) {
	if err := gaze.CheckShape(len(trial.Times), "label", len(labels)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err := f.Close()
		if err != nil && errOut == nil {
			errOut = err
		}
	}()
	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"t", "label"}); err != nil {
		return err
	}
	for i, label := range labels {
		cells := []string{
			strconv.FormatFloat(trial.Times[i], 'g', -1, 64),
			label.String(),
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadDir loads every .csv file in a directory, in lexical order.
func LoadDir(dir string) ([]*Trial, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var trials []*Trial
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		trial, err := LoadTrial(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		trials = append(trials, trial)
	}
	return trials, nil
}
