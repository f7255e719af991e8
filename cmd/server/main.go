package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"plant-disease-api/internal/handlers"
	"plant-disease-api/internal/labels"
	"plant-disease-api/internal/model"
	"plant-disease-api/internal/treatment"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	modelPath := getEnv("MODEL_PATH", "models/plant_disease_model.onnx")
	metadataPath := getEnv("MODEL_METADATA_PATH", "models/model_metadata.json")
	labelsPath := getEnv("LABELS_PATH", "labels.txt")

	log.Printf("Loading model from: %s", modelPath)

	modelServer, err := model.NewServer(modelPath, metadataPath)
	if err != nil {
		log.Fatalf("Failed to initialize model server: %v", err)
	}
	defer modelServer.Close()

	// A broken label file is not fatal: the server starts and every
	// prediction reports the mismatch instead.
	catalog, err := labels.Load(labelsPath)
	if err != nil {
		log.Printf("WARNING: label file missing or unreadable: %v", err)
		log.Println("The server will start but predictions will report a label file mismatch.")
		catalog = nil
	} else {
		log.Printf("Loaded %d labels from %s", catalog.Len(), labelsPath)
	}

	var generator treatment.TextGenerator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := treatment.NewGeminiClient(context.Background(), apiKey)
		if err != nil {
			log.Printf("WARNING: Gemini client unavailable, treatment advice will use the static fallback: %v", err)
		} else {
			generator = gemini
		}
	} else {
		log.Println("GEMINI_API_KEY not set, treatment advice will use the static fallback")
	}

	handler := handlers.NewHandler(modelServer, catalog, treatment.NewAdvisor(generator))

	http.HandleFunc("/", enableCORS(handler.Home))
	http.HandleFunc("/health", enableCORS(handler.Health))
	http.HandleFunc("/predict", enableCORS(handler.Predict))

	port := getEnv("PORT", "8080")

	log.Printf("Server starting on port %s", port)
	log.Println("Endpoints:")
	log.Println("  GET  /        - Liveness message")
	log.Println("  GET  /health  - Health check")
	log.Println("  POST /predict - Predict from image upload")
	log.Printf("\n💡 Upload test: curl -X POST -F \"image=@leaf.jpg\" http://localhost:%s/predict\n\n", port)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
