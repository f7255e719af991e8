// Package diagnosis turns a classifier probability vector into a structured
// diagnosis: label, confidence, severity, and the healthy/diseased flag.
package diagnosis

import (
	"fmt"
	"math"
	"strings"

	"plant-disease-api/internal/labels"
)

// Severity buckets a confidence percentage.
type Severity string

const (
	SeverityNone     Severity = "None"
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// MismatchError reports a label catalog whose length does not match the
// classifier's output vector. The catalog and model are independent assets,
// so the mismatch is only detectable here, per prediction.
type MismatchError struct {
	ModelClasses int
	LabelCount   int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("label file mismatch: model outputs %d classes but label file has %d",
		e.ModelClasses, e.LabelCount)
}

// Diagnosis is the immutable result of one classification.
type Diagnosis struct {
	RawLabel    string
	DisplayName string
	Confidence  float64 // percentage, rounded to two decimals
	Severity    Severity
	IsHealthy   bool
}

// Description renders the human-readable summary line.
func (d Diagnosis) Description() string {
	if d.IsHealthy {
		return fmt.Sprintf("Leaf appears healthy (%.2f%% confidence).", d.Confidence)
	}
	return fmt.Sprintf("%s detected with %.2f%% confidence.", d.DisplayName, d.Confidence)
}

// Resolve maps a probability vector onto the catalog. Ties on the maximum
// probability resolve to the lowest index.
func Resolve(probs []float32, catalog *labels.Catalog) (Diagnosis, error) {
	if catalog.Len() == 0 || catalog.Len() != len(probs) {
		return Diagnosis{}, &MismatchError{
			ModelClasses: len(probs),
			LabelCount:   catalog.Len(),
		}
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	raw := catalog.At(best)
	confidence := math.Round(float64(probs[best])*10000) / 100
	healthy := strings.Contains(strings.ToLower(raw), "healthy")

	severity := severityFor(confidence)
	if healthy {
		severity = SeverityNone
	}

	return Diagnosis{
		RawLabel:    raw,
		DisplayName: FormatDisplayName(raw),
		Confidence:  confidence,
		Severity:    severity,
		IsHealthy:   healthy,
	}, nil
}

// severityFor buckets a confidence percentage. Thresholds are strict lower
// bounds inherited from the original deployment; treat them as policy.
func severityFor(confidence float64) Severity {
	switch {
	case confidence > 80:
		return SeverityHigh
	case confidence > 50:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// FormatDisplayName converts a raw dataset label into its display form: the
// crop___disease separator and remaining underscores become spaces and each
// word is title-cased, e.g. "Tomato___Late_blight" -> "Tomato Late Blight".
func FormatDisplayName(raw string) string {
	s := strings.ReplaceAll(raw, "___", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
