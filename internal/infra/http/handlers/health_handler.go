package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// BrokerConn is the part of *amqp091.Connection health needs.
type BrokerConn interface {
	IsClosed() bool
}

// GatewayStatus reports the outcome of the most recent AI gateway call.
type GatewayStatus interface {
	LastCallError() error
}

type HealthHandler struct {
	RabbitMQ         BrokerConn
	Gateway          GatewayStatus
	MailConfigured   bool
	StreamingClients func() int
	StartTime        time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	EventStreams int               `json:"event_streams"`
}

func NewHealthHandler(rabbitMQ BrokerConn, gateway GatewayStatus, mailConfigured bool, streamingClients func() int) *HealthHandler {
	return &HealthHandler{
		RabbitMQ:         rabbitMQ,
		Gateway:          gateway,
		MailConfigured:   mailConfigured,
		StreamingClients: streamingClients,
		StartTime:        time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Gateway != nil {
		if h.Gateway.LastCallError() != nil {
			deps["ai_gateway"] = "unhealthy: last call failed"
		} else {
			deps["ai_gateway"] = "healthy"
		}
	} else {
		deps["ai_gateway"] = "not configured"
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

	if h.MailConfigured {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}
	if h.StreamingClients != nil {
		response.EventStreams = h.StreamingClients()
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	_ = json.NewEncoder(w).Encode(response)
}
