package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"crosswarped.com/aoc"
	"crosswarped.com/aoc/internal/inputsource"
)

type SolveRequest struct {
	Day        int    `json:"day"`
	Part       int    `json:"part"`
	Input      string `json:"input"`
	InputScope string `json:"inputScope"`
	Strict     bool   `json:"strict"`
}

type SolveResponse struct {
	Success   bool   `json:"success"`
	Answer    uint64 `json:"answer"`
	RequestID string `json:"requestId"`
	Error     string `json:"error,omitempty"`
}

const maxInputBytes = 1 << 20

// errUpstream marks failures to load a remote input.
var errUpstream = errors.New("fetch input")

var (
	logger = zap.NewNop()

	// remoteSource returns the source used for inputScope "bigquery".
	remoteSource = func() (aoc.Source, error) {
		project, table := os.Getenv("AOC_BQ_PROJECT"), os.Getenv("AOC_BQ_TABLE")
		if project == "" || table == "" {
			return nil, fmt.Errorf("AOC_BQ_PROJECT and AOC_BQ_TABLE must be set for inputScope bigquery")
		}
		return inputsource.BigQuerySource{Project: project, Table: table}, nil
	}
)

func execute(ctx context.Context, req SolveRequest, reqLog *zap.Logger) (uint64, error) {
	id := aoc.PuzzleID{Day: aoc.Day(req.Day), Part: aoc.Part(req.Part)}

	input := []byte(req.Input)
	switch req.InputScope {
	case "":
		if len(input) == 0 {
			return 0, fmt.Errorf("input must not be empty")
		}
	case "bigquery":
		src, err := remoteSource()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errUpstream, err)
		}
		if input, err = src.Fetch(ctx, req.Day); err != nil {
			return 0, fmt.Errorf("%w: %w", errUpstream, err)
		}
		reqLog.Info("loaded input", zap.Int("day", req.Day), zap.Int("bytes", len(input)))
	default:
		return 0, fmt.Errorf("unknown inputScope %q", req.InputScope)
	}

	solver := aoc.CreateSolver(aoc.SolverParams{Logger: reqLog, Strict: req.Strict})
	return solver.Solve(ctx, id, input)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func writeResponse(w http.ResponseWriter, status int, resp SolveResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("encode response", zap.String("request_id", resp.RequestID), zap.Error(err))
	}
}

func solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	requestID := uuid.NewString()
	reqLog := logger.With(zap.String("request_id", requestID))

	if r.Method != http.MethodPost {
		writeResponse(w, http.StatusMethodNotAllowed, SolveResponse{
			RequestID: requestID,
			Error:     fmt.Sprintf("method %s not allowed", r.Method),
		})
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputBytes)).Decode(&req); err != nil {
		reqLog.Warn("invalid request body", zap.Error(err))
		writeResponse(w, http.StatusBadRequest, SolveResponse{
			RequestID: requestID,
			Error:     fmt.Sprintf("invalid JSON: %v", err),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	start := time.Now()
	answer, err := execute(ctx, req, reqLog)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUpstream) {
			status = http.StatusBadGateway
		} else if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		reqLog.Warn("solve failed", zap.Int("day", req.Day), zap.Int("part", req.Part), zap.Error(err))
		writeResponse(w, status, SolveResponse{RequestID: requestID, Error: err.Error()})
		return
	}

	reqLog.Info("solved",
		zap.Int("day", req.Day),
		zap.Int("part", req.Part),
		zap.Uint64("answer", answer),
		zap.Duration("elapsed", time.Since(start)))
	writeResponse(w, http.StatusOK, SolveResponse{Success: true, Answer: answer, RequestID: requestID})
}

func main() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v\n", err)
	}
	logger = l
	defer logger.Sync()

	funcframework.RegisterHTTPFunction("/solve", solve)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		logger.Fatal("funcframework.StartHostPort", zap.Error(err))
	}
}
