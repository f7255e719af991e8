package diagnosis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant-disease-api/internal/labels"
)

func TestResolve(t *testing.T) {
	catalog := labels.New([]string{
		"Apple___Apple_scab",
		"Tomato___Late_blight",
		"Tomato___healthy",
	})

	t.Run("picks the argmax label", func(t *testing.T) {
		d, err := Resolve([]float32{0.05, 0.9, 0.05}, catalog)

		require.NoError(t, err)
		assert.Equal(t, "Tomato___Late_blight", d.RawLabel)
		assert.Equal(t, "Tomato Late Blight", d.DisplayName)
		assert.Equal(t, 90.0, d.Confidence)
		assert.Equal(t, SeverityHigh, d.Severity)
		assert.False(t, d.IsHealthy)
	})

	t.Run("is deterministic", func(t *testing.T) {
		probs := []float32{0.2, 0.7, 0.1}

		first, err := Resolve(probs, catalog)
		require.NoError(t, err)
		second, err := Resolve(probs, catalog)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("ties resolve to the lowest index", func(t *testing.T) {
		d, err := Resolve([]float32{0.1, 0.45, 0.45}, catalog)

		require.NoError(t, err)
		assert.Equal(t, "Tomato___Late_blight", d.RawLabel)
	})

	t.Run("healthy label", func(t *testing.T) {
		d, err := Resolve([]float32{0.01, 0.01, 0.98}, catalog)

		require.NoError(t, err)
		assert.True(t, d.IsHealthy)
		assert.Equal(t, "Tomato Healthy", d.DisplayName)
		assert.Equal(t, SeverityNone, d.Severity)
	})

	t.Run("confidence rounds to two decimals", func(t *testing.T) {
		d, err := Resolve([]float32{0.876543, 0.1, 0.02}, catalog)

		require.NoError(t, err)
		assert.Equal(t, 87.65, d.Confidence)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Resolve([]float32{0.5, 0.5}, catalog)

		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, 2, mismatch.ModelClasses)
		assert.Equal(t, 3, mismatch.LabelCount)
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := Resolve([]float32{0.5, 0.5}, nil)

		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, 2, mismatch.ModelClasses)
		assert.Equal(t, 0, mismatch.LabelCount)
	})

	t.Run("mismatch is independent of the max index", func(t *testing.T) {
		_, err := Resolve([]float32{0.9, 0.05, 0.03, 0.02}, catalog)

		var mismatch *MismatchError
		assert.True(t, errors.As(err, &mismatch))
	})
}

func TestSeverityBoundaries(t *testing.T) {
	catalog := labels.New([]string{"Tomato___Late_blight"})

	t.Run("exactly 80 is Moderate", func(t *testing.T) {
		d, err := Resolve([]float32{0.80}, catalog)

		require.NoError(t, err)
		assert.Equal(t, 80.0, d.Confidence)
		assert.Equal(t, SeverityModerate, d.Severity)
	})

	t.Run("exactly 50 is Low", func(t *testing.T) {
		d, err := Resolve([]float32{0.50}, catalog)

		require.NoError(t, err)
		assert.Equal(t, 50.0, d.Confidence)
		assert.Equal(t, SeverityLow, d.Severity)
	})

	t.Run("above 80 is High", func(t *testing.T) {
		d, err := Resolve([]float32{0.81}, catalog)

		require.NoError(t, err)
		assert.Equal(t, SeverityHigh, d.Severity)
	})
}

func TestFormatDisplayName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Tomato___Late_blight", "Tomato Late Blight"},
		{"Tomato___healthy", "Tomato Healthy"},
		{"Pepper,_bell___Bacterial_spot", "Pepper, Bell Bacterial Spot"},
		{"Apple___Cedar_apple_rust", "Apple Cedar Apple Rust"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDisplayName(tc.raw))
		})
	}
}

func TestDescription(t *testing.T) {
	t.Run("diseased", func(t *testing.T) {
		d := Diagnosis{DisplayName: "Tomato Late Blight", Confidence: 91.23}

		assert.Equal(t, "Tomato Late Blight detected with 91.23% confidence.", d.Description())
	})

	t.Run("healthy", func(t *testing.T) {
		d := Diagnosis{DisplayName: "Tomato Healthy", Confidence: 97.5, IsHealthy: true}

		assert.Equal(t, "Leaf appears healthy (97.50% confidence).", d.Description())
	})
}
