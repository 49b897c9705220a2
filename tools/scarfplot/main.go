package main

import (
	"fmt"
	"github.com/gazelab/gazeline/config"
	"github.com/gazelab/gazeline/dataset"
	"github.com/gazelab/gazeline/detect"
	"github.com/gazelab/gazeline/gaze"
	"github.com/gazelab/gazeline/scarf"
	"github.com/gazelab/gazeline/store"
	"gonum.org/v1/plot/vg"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	plotWidth  = 12 * vg.Inch
	plotHeight = 4 * vg.Inch
)

func usage() {
	log.Fatalf("Usage: %s [-config path] [-o out.png] [-display] [-nocache] <trial.csv>",
		filepath.Base(os.Args[0]))
}

func main() {
	var configPath, outPath, trialPath string
	var display, nocache bool
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config":
			i += 1
			if i == len(args) {
				usage()
			}
			configPath = args[i]
		case "-o":
			i += 1
			if i == len(args) {
				usage()
			}
			outPath = args[i]
		case "-display":
			display = true
		case "-nocache":
			nocache = true
		default:
			if strings.HasPrefix(args[i], "-") || trialPath != "" {
				usage()
			}
			trialPath = args[i]
		}
	}
	if trialPath == "" {
		usage()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	trial, err := dataset.LoadTrial(trialPath)
	if err != nil {
		log.Fatal(err)
	}
	pal, err := cfg.Palette()
	if err != nil {
		log.Fatal(err)
	}
	detectors, err := cfg.Detectors()
	if err != nil {
		log.Fatal(err)
	}

	var cache *store.Store
	if !nocache {
		cache, err = store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			_ = cache.Close()
		}()
	}

	var specs []scarf.RowSpec
	if trial.Labels != nil {
		specs = append(specs, scarf.RowSpec{
			Name:   "reference",
			Times:  trial.Times,
			Labels: trial.Labels,
		})
	}
	for _, d := range detectors {
		labels, err := detectorLabels(cache, trial, d)
		if err != nil {
			log.Fatal(err)
		}
		specs = append(specs, scarf.RowSpec{
			Name:   d.Name(),
			Times:  trial.Times,
			Labels: labels,
		})
	}

	p, err := scarf.StackRows(trial.Name, specs, pal)
	if err != nil {
		log.Fatal(err)
	}

	if outPath != "" {
		format := strings.TrimPrefix(filepath.Ext(outPath), ".")
		if format == "" {
			format = "png"
		}
		if err := scarf.SavePlot(p, plotWidth, plotHeight, outPath, format); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", outPath)
	}
	if display || outPath == "" {
		if cfg.Viewer.Command != "" {
			if err := scarf.DisplayPlotExternal(p, plotWidth, plotHeight, cfg.Viewer.Command); err != nil {
				log.Fatal(err)
			}
		} else if err := scarf.Display(p); err != nil {
			log.Fatal(err)
		}
	}
}

// detectorLabels pulls a cached labeling when one still matches the trial,
// and otherwise runs the detector and fills the cache.
func detectorLabels(cache *store.Store, trial *dataset.Trial, d detect.Detector) ([]gaze.EventLabel, error) {
	if cache != nil {
		labels, ok, err := cache.GetRun(trial.Name, d.Name())
		if err != nil {
			return nil, err
		}
		if ok && len(labels) == len(trial.Times) {
			log.Printf("detector %s: using cached run", d.Name())
			return labels, nil
		}
	}
	labels, err := d.Detect(trial.Times, trial.X, trial.Y)
	if err != nil {
		return nil, fmt.Errorf("detector %s: %v", d.Name(), err)
	}
	if cache != nil {
		if _, err := cache.PutRun(trial.Name, d.Name(), labels); err != nil {
			return nil, err
		}
	}
	return labels, nil
}
