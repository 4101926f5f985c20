package services

import (
	"net/http"

	"github.com/octofit/octofit-tracker/internal/appconfig"
	"github.com/octofit/octofit-tracker/internal/metrics"
)

// Service contains all shared dependencies for handlers and commands.
type Service struct {
	Config  *appconfig.Config
	Backend *BackendClient
	Metrics *metrics.Metrics
}

// NewService builds the backend client from cfg. m may be nil.
func NewService(cfg *appconfig.Config, m *metrics.Metrics) *Service {
	backend := NewBackendClient(cfg.APIBaseURL(), &http.Client{Timeout: cfg.HTTP.Timeout})
	backend.Metrics = m

	return &Service{
		Config:  cfg,
		Backend: backend,
		Metrics: m,
	}
}
