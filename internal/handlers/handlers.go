package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"

	"plant-disease-api/internal/diagnosis"
	"plant-disease-api/internal/labels"
	"plant-disease-api/internal/preprocess"
	"plant-disease-api/internal/treatment"
)

// Classifier is the surface of the model server the request pipeline needs.
type Classifier interface {
	Infer(input []float32) ([]float32, error)
	InputSize() int
}

type Handler struct {
	classifier Classifier
	catalog    *labels.Catalog
	advisor    *treatment.Advisor
	logger     *slog.Logger
}

func NewHandler(classifier Classifier, catalog *labels.Catalog, advisor *treatment.Advisor) *Handler {
	return &Handler{
		classifier: classifier,
		catalog:    catalog,
		advisor:    advisor,
		logger:     slog.Default(),
	}
}

// PredictionResponse is the success body for POST /predict. Treatment is
// null for a healthy diagnosis.
type PredictionResponse struct {
	Disease     string   `json:"disease"`
	Confidence  float64  `json:"confidence"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Treatment   []string `json:"treatment"`
	IsHealthy   bool     `json:"is_healthy"`
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "🌱 Plant Disease Detection API Running"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form (10MB max)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
		return
	}
	defer file.Close()

	log.Printf("Received file: %s, size: %d bytes", header.Filename, header.Size)

	input, err := preprocess.Normalize(file, h.classifier.InputSize())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	probs, err := h.classifier.Infer(input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	diag, err := diagnosis.Resolve(probs, h.catalog)
	if err != nil {
		var mismatch *diagnosis.MismatchError
		if errors.As(err, &mismatch) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":                "Label file mismatch!",
				"model_output_classes": mismatch.ModelClasses,
				"labels_in_file":       mismatch.LabelCount,
				"message":              "Make sure labels.txt contains the same number of classes as the model.",
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	plan := h.advisor.Advise(r.Context(), diag)

	resp := PredictionResponse{
		Disease:     diag.DisplayName,
		Confidence:  diag.Confidence,
		Severity:    string(diag.Severity),
		Description: diag.Description(),
		Treatment:   plan,
		IsHealthy:   diag.IsHealthy,
	}
	if diag.IsHealthy {
		resp.Disease = "No Disease Detected"
	}

	log.Printf("Prediction: %s (%.2f%%, severity %s)", diag.RawLabel, diag.Confidence, diag.Severity)
	writeJSON(w, http.StatusOK, resp)
}

// fail is the error boundary for the prediction pipeline: every unhandled
// fault becomes a 500 with the fault's message in the body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Prediction failed.", slog.Any("error", xerrors.New(err)))
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Prediction failed",
		"details": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
