package swqos

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

const (
	// healthCheckInterval defines interval between endpoint health checks
	healthCheckInterval = 30 * time.Second
	// pingRetryDelay defines delay between failed ping retries
	pingRetryDelay = 5 * time.Second
	// maxPingAttempts defines maximum number of ping attempts per check
	maxPingAttempts = 3
)

// EndpointMonitor keeps a submission endpoint's connection pool warm and
// surfaces vendor outages in the logs before a trade hits them.
type EndpointMonitor interface {
	// Start starts endpoint monitoring
	Start(ctx context.Context) error
	// Stop stops endpoint monitoring
	Stop()
}

// EndpointPinger is implemented by channels that expose a health probe.
type EndpointPinger interface {
	// Ping checks the endpoint and keeps its connection warm
	Ping(ctx context.Context) error
}

type endpointMonitor struct {
	pinger       EndpointPinger
	logger       *logrus.Logger
	swqosType    types.SwqosType
	stopChan     chan struct{}
	isMonitoring bool
	monitorMutex sync.RWMutex
}

func NewEndpointMonitor(pinger EndpointPinger, logger *logrus.Logger, swqosType types.SwqosType) EndpointMonitor {
	return &endpointMonitor{
		pinger:    pinger,
		logger:    logger,
		swqosType: swqosType,
		stopChan:  make(chan struct{}),
	}
}

func (m *endpointMonitor) Start(ctx context.Context) error {
	m.monitorMutex.Lock()
	if m.isMonitoring {
		m.monitorMutex.Unlock()
		return errors.Errorf("endpoint monitor is already running for swqos %s", m.swqosType)
	}
	m.isMonitoring = true
	m.monitorMutex.Unlock()

	go m.monitorEndpoint(ctx)
	return nil
}

func (m *endpointMonitor) Stop() {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if !m.isMonitoring {
		return
	}

	close(m.stopChan)
	m.isMonitoring = false
}

func (m *endpointMonitor) monitorEndpoint(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.WithField("swqos", m.swqosType).Info("Endpoint monitoring stopped due to context cancellation")
			return

		case <-m.stopChan:
			m.logger.WithField("swqos", m.swqosType).Info("Endpoint monitoring stopped")
			return

		case <-ticker.C:
			if err := m.checkEndpoint(ctx); err != nil {
				m.logger.WithFields(logrus.Fields{
					"swqos": m.swqosType,
					"error": err,
				}).Error("Endpoint health check failed")
			}
		}
	}
}

func (m *endpointMonitor) checkEndpoint(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= maxPingAttempts; attempt++ {
		if err := m.pinger.Ping(ctx); err != nil {
			lastErr = err
			m.logger.WithFields(logrus.Fields{
				"swqos":   m.swqosType,
				"attempt": attempt,
				"error":   err,
			}).Warn("Endpoint ping failed")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pingRetryDelay):
				continue
			}
		}

		m.logger.WithField("swqos", m.swqosType).Debug("Endpoint ping successful")
		return nil
	}
	return errors.Wrapf(lastErr, "endpoint unreachable for swqos %s", m.swqosType)
}

// httpPinger probes a vendor health endpoint with a bare GET. Besides the
// health signal, the request keeps a pooled connection open so the next
// submit skips the TLS handshake.
type httpPinger struct {
	url        string
	httpClient *http.Client
}

// NewHTTPPinger builds a pinger for a vendor /ping or /health URL.
func NewHTTPPinger(url string) EndpointPinger {
	return &httpPinger{
		url:        url,
		httpClient: sharedSubmitClient(),
	}
}

func (p *httpPinger) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create ping request")
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "ping request failed")
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return errors.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}
