// Command session-plot renders a PNG of one subject's processed heart
// signal: the QRS-band filtered, rectified, smoothed trace with detected
// heartbeat peaks overlaid. Useful for eyeballing peak detection quality on
// a real recording.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wearlab-data/stress.report/internal/ecg"
	"github.com/wearlab-data/stress.report/internal/wesad"
)

var (
	rootDir = flag.String("root", "", "Dataset root containing subject folders")
	subject = flag.String("subject", "", "Subject ID (e.g. S2)")
	fromS   = flag.Float64("from-s", 0, "Start of the plotted span in seconds")
	spanS   = flag.Float64("span-s", 10, "Plotted span length in seconds")
	outPath = flag.String("out", "session.png", "Output PNG path")
)

func main() {
	flag.Parse()
	if *rootDir == "" || *subject == "" {
		log.Fatal("both -root and -subject are required")
	}

	session, err := wesad.LoadSubject(*rootDir, *subject)
	if err != nil {
		log.Fatalf("Failed to load subject: %v", err)
	}

	heart := session.Heart.Channel(0)
	fs := session.Heart.RateHz

	// Run the same pipeline the trainer uses so the plot shows what peak
	// detection actually sees.
	filt := ecg.BandpassFFT(heart, fs, 5.0, 15.0)
	for i, v := range filt {
		filt[i] = math.Abs(v)
	}
	window := int(math.Round(0.05 * fs))
	if window < 3 {
		window = 3
	}
	smooth := ecg.MovingAverage(filt, window)
	peaks := ecg.DetectPeaks(smooth, fs, 200.0)
	log.Printf("%s: %d peaks over %.1f s", *subject, len(peaks), session.Heart.DurationSecs())

	i0 := int(*fromS * fs)
	i1 := int((*fromS + *spanS) * fs)
	if i0 < 0 {
		i0 = 0
	}
	if i1 > len(smooth) {
		i1 = len(smooth)
	}
	if i0 >= i1 {
		log.Fatalf("empty plot span [%d, %d)", i0, i1)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s heart signal (filtered) %.1f-%.1f s", *subject, *fromS, *fromS+*spanS)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "amplitude"

	trace := make(plotter.XYs, 0, i1-i0)
	for i := i0; i < i1; i++ {
		trace = append(trace, plotter.XY{X: float64(i) / fs, Y: smooth[i]})
	}
	line, err := plotter.NewLine(trace)
	if err != nil {
		log.Fatalf("Failed to build trace line: %v", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("smoothed", line)

	peakPts := make(plotter.XYs, 0, len(peaks))
	for _, pk := range peaks {
		if pk >= i0 && pk < i1 {
			peakPts = append(peakPts, plotter.XY{X: float64(pk) / fs, Y: smooth[pk]})
		}
	}
	scatter, err := plotter.NewScatter(peakPts)
	if err != nil {
		log.Fatalf("Failed to build peak scatter: %v", err)
	}
	p.Add(scatter)
	p.Legend.Add("peaks", scatter)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, *outPath); err != nil {
		log.Fatalf("Failed to save plot: %v", err)
	}
	log.Printf("Wrote %s", *outPath)
}
