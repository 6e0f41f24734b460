// Package probe defines the security probe contract and the concrete probes
// the scan worker fans out to. Every probe inspects one dimension of a
// domain's posture and reports findings; a probe that cannot complete returns
// an error and the scan continues with the remaining probes.
package probe

import (
	"context"

	"domainguard/pkg/domain"
)

// Probe inspects one security dimension of a domain.
//
// Inspect returns the detected findings (possibly none) for the given host.
// Findings are returned without a ScanID; the worker attaches them to the
// owning scan. An error means the probe itself could not run, not that the
// domain is unhealthy.
type Probe interface {
	// Name uniquely identifies the probe.
	Name() string
	// Category is the finding category this probe reports under.
	Category() domain.FindingCategory
	// Inspect runs the probe against host, honoring ctx cancellation.
	Inspect(ctx context.Context, host string) ([]domain.Finding, error)
}

// Registry is the fixed set of probes a scan fans out to.
type Registry struct {
	probes []Probe
}

// NewRegistry creates a registry from the given probes.
func NewRegistry(probes ...Probe) *Registry {
	return &Registry{probes: probes}
}

// DefaultRegistry returns the standard probe set covering email security,
// certificates, web hardening and network exposure.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewEmailAuth(nil),
		NewCertificate(),
		NewWebHardening(nil),
		NewNetworkExposure(nil),
	)
}

// Probes returns the registered probes.
func (r *Registry) Probes() []Probe {
	return r.probes
}

// Len returns the number of registered probes.
func (r *Registry) Len() int {
	return len(r.probes)
}
