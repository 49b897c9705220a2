package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"github.com/gazelab/gazeline/compare"
	"github.com/gazelab/gazeline/config"
	"github.com/gazelab/gazeline/dataset"
	"github.com/gazelab/gazeline/gaze"
	"github.com/gazelab/gazeline/report"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func usage() {
	log.Fatalf("Usage: %s [-config path] [-report out.html] <trial.csv>",
		filepath.Base(os.Args[0]))
}

func main() {
	var configPath, reportPath, trialPath string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config":
			i += 1
			if i == len(args) {
				usage()
			}
			configPath = args[i]
		case "-report":
			i += 1
			if i == len(args) {
				usage()
			}
			reportPath = args[i]
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
	if reportPath == "" {
		reportPath = cfg.Report.Path
	}
	trial, err := dataset.LoadTrial(trialPath)
	if err != nil {
		log.Fatal(err)
	}
	detectors, err := cfg.Detectors()
	if err != nil {
		log.Fatal(err)
	}

	var labelings []report.Labeling
	if trial.Labels != nil {
		labelings = append(labelings, report.Labeling{Name: "reference", Labels: trial.Labels})
	}
	for _, d := range detectors {
		labels, err := d.Detect(trial.Times, trial.X, trial.Y)
		if err != nil {
			log.Fatalf("detector %s: %v", d.Name(), err)
		}
		labelings = append(labelings, report.Labeling{Name: d.Name(), Labels: labels})
	}

	summary, err := AgreementSummary(labelings)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(summary)

	rep, err := report.Build(trial.Name, trial.Times, labelings)
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(reportPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := report.Write(f, rep); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", reportPath)
}

// AgreementSummary renders the pairwise sample-level metrics as CSV, one
// row per labeling pair.
func AgreementSummary(labelings []report.Labeling) (string, error) {
	metrics := []struct {
		name string
		fn   func(ref, pred []gaze.EventLabel) (float64, error)
	}{
		{"Accuracy", compare.Accuracy},
		{"BalancedAccuracy", compare.BalancedAccuracy},
		{"CohenKappa", compare.CohenKappa},
		{"LevenshteinRatio", compare.LevenshteinRatio},
	}
	var data bytes.Buffer
	c := csv.NewWriter(&data)
	fields := []string{"A", "B"}
	for _, metric := range metrics {
		fields = append(fields, metric.name)
	}
	if err := c.Write(fields); err != nil {
		panic(err)
	}
	for i := range labelings {
		for j := i + 1; j < len(labelings); j++ {
			a, b := labelings[i], labelings[j]
			columns := []string{a.Name, b.Name}
			for _, metric := range metrics {
				value, err := metric.fn(a.Labels, b.Labels)
				if err != nil {
					return "", fmt.Errorf("comparing %s with %s: %v", a.Name, b.Name, err)
				}
				columns = append(columns, strconv.FormatFloat(value, 'f', 4, 64))
			}
			if err := c.Write(columns); err != nil {
				panic(err)
			}
		}
	}
	c.Flush()
	if err := c.Error(); err != nil {
		panic(err)
	}
	return data.String(), nil
}
