package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type HealthHandler struct {
	DataDir   string
	RabbitMQ  *amqp091.Connection
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(dataDir string, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{
		DataDir:   dataDir,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Storage: the data dir must be writable.
	probe := filepath.Join(h.DataDir, ".health")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		deps["storage"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		os.Remove(probe)
		deps["storage"] = "healthy"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if os.Getenv("GROQ_API_KEY") != "" {
		deps["groq"] = "configured"
	} else {
		deps["groq"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeData(w, code, response)
}
