package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"domainguard/pkg/domain"
)

// riskyPort describes a service port that should not face the internet.
type riskyPort struct {
	port     int
	service  string
	severity domain.Severity
}

var riskyPorts = []riskyPort{
	{21, "FTP", domain.SeverityHigh},
	{23, "Telnet", domain.SeverityCritical},
	{25, "SMTP (open relay surface)", domain.SeverityMedium},
	{110, "POP3", domain.SeverityMedium},
	{135, "MS RPC", domain.SeverityHigh},
	{139, "NetBIOS", domain.SeverityHigh},
	{445, "SMB", domain.SeverityCritical},
	{1433, "Microsoft SQL Server", domain.SeverityCritical},
	{3306, "MySQL", domain.SeverityCritical},
	{3389, "RDP", domain.SeverityCritical},
	{5432, "PostgreSQL", domain.SeverityCritical},
	{5900, "VNC", domain.SeverityHigh},
	{6379, "Redis", domain.SeverityCritical},
	{9200, "Elasticsearch", domain.SeverityCritical},
	{27017, "MongoDB", domain.SeverityCritical},
}

// DialFunc attempts a connection; a nil error means the port is reachable.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// NetworkExposure dials well-known service ports on the domain and reports
// the ones that accept connections. Ports are probed concurrently; an
// unreachable port is the healthy outcome, never an error.
type NetworkExposure struct {
	dial DialFunc
}

// NewNetworkExposure creates the network exposure probe. A nil dial uses a
// plain net.Dialer.
func NewNetworkExposure(dial DialFunc) *NetworkExposure {
	if dial == nil {
		var dialer net.Dialer
		dial = dialer.DialContext
	}

	return &NetworkExposure{dial: dial}
}

// Name implements Probe.
func (*NetworkExposure) Name() string { return "network-exposure" }

// Category implements Probe.
func (*NetworkExposure) Category() domain.FindingCategory { return domain.CategoryNetworkExposure }

// Inspect implements Probe.
func (n *NetworkExposure) Inspect(ctx context.Context, host string) ([]domain.Finding, error) {
	results := make([]*domain.Finding, len(riskyPorts))

	var wg sync.WaitGroup
	for i, rp := range riskyPorts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			addr := net.JoinHostPort(host, strconv.Itoa(rp.port))
			conn, err := n.dial(ctx, "tcp", addr)
			if err != nil {
				return
			}
			_ = conn.Close()

			results[i] = &domain.Finding{
				Category:    domain.CategoryNetworkExposure,
				Severity:    rp.severity,
				Title:       fmt.Sprintf("%s port %d is reachable", rp.service, rp.port),
				Description: fmt.Sprintf("port %d (%s) accepts connections from the internet", rp.port, rp.service),
				Remediation: fmt.Sprintf("firewall port %d or bind the service to a private interface", rp.port),
			}
		}()
	}
	wg.Wait()

	// A dial aborted by the context looks exactly like a closed port, so a
	// canceled run would otherwise pass as a clean bill of health.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("port sweep interrupted: %w", err)
	}

	var findings []domain.Finding
	for _, f := range results {
		if f != nil {
			findings = append(findings, *f)
		}
	}

	return findings, nil
}
