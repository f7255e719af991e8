// Package treatment produces treatment advice for a diagnosis, either from
// the Gemini API or from a static fallback list.
package treatment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"plant-disease-api/internal/diagnosis"
)

// TextGenerator is the narrow surface of a generative-text backend: one
// prompt in, free text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenericFallback is the static advice used whenever AI-generated advice is
// unavailable or unusable. Order is fixed.
var GenericFallback = []string{
	"Remove infected leaves",
	"Apply appropriate fungicide or pesticide",
	"Improve ventilation and sunlight exposure",
	"Avoid overhead watering to reduce moisture",
	"Monitor the plant daily for new symptoms",
}

// RateLimitAdvisory prefixes the fallback list when the AI service reports
// quota exhaustion.
const RateLimitAdvisory = "AI advice is temporarily rate-limited; showing general guidance instead"

const maxSteps = 6
const minSteps = 3

// Advisor generates a treatment plan for a diagnosis.
type Advisor struct {
	gen TextGenerator
}

// NewAdvisor wraps a text generator. A nil generator is valid and means
// advice always comes from the fallback list.
func NewAdvisor(gen TextGenerator) *Advisor {
	return &Advisor{gen: gen}
}

// Advise returns a treatment plan, or nil for a healthy leaf. It makes at
// most one generation call, never retries, and never returns an error:
// generation failures degrade to the fallback list.
func (a *Advisor) Advise(ctx context.Context, d diagnosis.Diagnosis) []string {
	if d.IsHealthy {
		return nil
	}
	if a == nil || a.gen == nil {
		return GenericFallback
	}

	text, err := a.gen.Generate(ctx, buildPrompt(d))
	if err != nil {
		if isRateLimited(err) {
			return append([]string{RateLimitAdvisory}, GenericFallback...)
		}
		return GenericFallback
	}

	steps := parseSteps(text)
	if len(steps) < minSteps {
		return GenericFallback
	}
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}
	return steps
}

func buildPrompt(d diagnosis.Diagnosis) string {
	return fmt.Sprintf(`A plant leaf has been diagnosed with %s (confidence %.2f%%, severity %s).

List 5-6 practical treatment steps specific to this disease. Respond with a numbered list only, one short imperative step per line, no preamble and no closing remarks.`,
		d.DisplayName, d.Confidence, d.Severity)
}

// enumPrefix matches a leading enumeration marker like "1.", "2)" or "3-".
var enumPrefix = regexp.MustCompile(`^\d+[.)\-]\s*`)

// parseSteps extracts usable treatment lines from raw model output. Lines
// keep their original order; enumeration markers are stripped; empty, too
// short, and bullet-only lines are dropped.
func parseSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = enumPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if len(line) < 4 {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
			continue
		}
		steps = append(steps, line)
	}
	return steps
}

// isRateLimited sniffs the error text for quota exhaustion. Substring
// matching is policy inherited from the original deployment, not a
// structural guarantee of the Gemini API.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"quota", "rate limit", "resource_exhausted", "429"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
