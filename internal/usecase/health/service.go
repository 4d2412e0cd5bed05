package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	assistant AssistantChecker
}

// New creates a Service. assistant can be nil.
func New(db DBPinger, assistant AssistantChecker) *Service {
	return &Service{db: db, assistant: assistant}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.assistant != nil {
		if err := s.assistant.HealthCheck(ctx); err != nil {
			checks["assistant"] = CheckError
		} else {
			checks["assistant"] = CheckOK
		}
	}

	// The store is load-bearing; a failed ping means the service cannot
	// serve anything. A failing assistant only degrades.
	status := Healthy
	switch {
	case checks["database"] == CheckError:
		status = Unhealthy
	default:
		for _, v := range checks {
			if v == CheckError {
				status = Degraded
				break
			}
		}
	}

	return Report{Status: status, Checks: checks}
}
