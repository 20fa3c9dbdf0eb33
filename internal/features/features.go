// Package features turns one time window of a session into a fixed 4-feature
// vector, or rejects the window when coverage or plausibility gates fail.
package features

// Canonical feature names, in row order. These names are shared with the
// serialized artifact and the downstream scoring app.
const (
	NameHRMeanBPM  = "hrMeanBPM"
	NameHRVSDNNms  = "hrvSDNNms"
	NameWristTempC = "wristTempC"
	NameAccRMSG    = "accRMSG"
)

// Names lists the feature names in row order.
var Names = []string{NameHRMeanBPM, NameHRVSDNNms, NameWristTempC, NameAccRMSG}

// WindowFeatures is the complete feature vector for one accepted window.
// It only exists when all four sub-extractions succeeded; there is no
// partially filled variant.
type WindowFeatures struct {
	HRMeanBPM  float64
	HRVSDNNms  float64
	WristTempC float64
	AccRMSG    float64
}

// Row returns the features as a slice in the order given by Names.
func (f WindowFeatures) Row() []float64 {
	return []float64{f.HRMeanBPM, f.HRVSDNNms, f.WristTempC, f.AccRMSG}
}
