package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lumeo-app/lumeo/internal/database"
)

var healthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "lumeo_health_check_status",
	Help: "Health check status per backend (1 = healthy, 0 = unhealthy).",
}, []string{"service"})

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

type HealthService struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewHealthService(db *database.Database, logger *logrus.Logger) *HealthService {
	return &HealthService{db: db, logger: logger}
}

// Check pings each backend. Mongo is the only critical dependency: without
// it no scoring input exists. Redis and Neo4j failures degrade (no cache, no
// follow signal) but the service still answers.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.db.MongoClient.Ping(checkCtx, readpref.Primary()); err != nil {
		s.record(&status, "mongo", err)
		status.Status = "unhealthy"
	} else {
		s.record(&status, "mongo", nil)
	}

	if err := s.db.Redis.Ping(checkCtx).Err(); err != nil {
		s.record(&status, "redis", err)
		if status.Status == "healthy" {
			status.Status = "degraded"
		}
	} else {
		s.record(&status, "redis", nil)
	}

	if err := s.db.Neo4j.VerifyConnectivity(checkCtx); err != nil {
		s.record(&status, "neo4j", err)
		if status.Status == "healthy" {
			status.Status = "degraded"
		}
	} else {
		s.record(&status, "neo4j", nil)
	}

	return status
}

func (s *HealthService) record(status *HealthStatus, service string, err error) {
	if err != nil {
		s.logger.WithError(err).WithField("service", service).Warn("Health check failed")
		status.Services[service] = "unhealthy"
		healthCheckStatus.WithLabelValues(service).Set(0)
		return
	}
	status.Services[service] = "healthy"
	healthCheckStatus.WithLabelValues(service).Set(1)
}
