package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"time"

	"domainguard/pkg/domain"
)

// certExpiryWarning is how close to expiry a certificate must be before the
// probe reports it.
const certExpiryWarning = 14 * 24 * time.Hour

// Certificate checks the domain's TLS certificate on port 443: validity,
// chain trust, hostname match and time to expiry.
type Certificate struct {
	// DialTLS performs the TLS handshake. Overridable in tests.
	DialTLS func(ctx context.Context, addr string, cfg *tls.Config) (*tls.Conn, error)
	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewCertificate creates the certificate probe with the real TLS dialer.
func NewCertificate() *Certificate {
	return &Certificate{
		DialTLS: func(ctx context.Context, addr string, cfg *tls.Config) (*tls.Conn, error) {
			dialer := &tls.Dialer{Config: cfg}
			conn, err := dialer.DialContext(ctx, "tcp", addr)
			if err != nil {
				return nil, err //nolint: wrapcheck
			}

			return conn.(*tls.Conn), nil
		},
		Now: time.Now,
	}
}

// Name implements Probe.
func (*Certificate) Name() string { return "certificate" }

// Category implements Probe.
func (*Certificate) Category() domain.FindingCategory { return domain.CategoryCertificate }

// Inspect implements Probe.
func (c *Certificate) Inspect(ctx context.Context, host string) ([]domain.Finding, error) {
	addr := net.JoinHostPort(host, "443")

	// handshake with verification disabled so an invalid chain yields
	// findings instead of a failed probe; trust is re-checked below
	conn, err := c.DialTLS(ctx, addr, &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: true, //nolint: gosec
	})
	if err != nil {
		return nil, fmt.Errorf("could not reach %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil, errors.New("server presented no certificates")
	}
	leaf := certs[0]

	var findings []domain.Finding
	now := c.Now()

	switch {
	case now.After(leaf.NotAfter):
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryCertificate,
			Severity:    domain.SeverityCritical,
			Title:       "certificate expired",
			Description: fmt.Sprintf("the certificate expired on %s", leaf.NotAfter.Format(time.RFC3339)),
			Remediation: "renew the certificate and redeploy it",
		})
	case leaf.NotAfter.Sub(now) < certExpiryWarning:
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryCertificate,
			Severity:    domain.SeverityHigh,
			Title:       "certificate expires soon",
			Description: fmt.Sprintf("the certificate expires on %s", leaf.NotAfter.Format(time.RFC3339)),
			Remediation: "renew the certificate before it expires",
		})
	}

	if err := leaf.VerifyHostname(host); err != nil {
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryCertificate,
			Severity:    domain.SeverityHigh,
			Title:       "certificate hostname mismatch",
			Description: fmt.Sprintf("the certificate is not valid for %s", host),
			Remediation: "issue a certificate covering this hostname",
		})
	}

	if finding := verifyChain(certs, host, now); finding != nil {
		findings = append(findings, *finding)
	}

	return findings, nil
}

// verifyChain checks the presented chain against the system trust store.
func verifyChain(certs []*x509.Certificate, host string, now time.Time) *domain.Finding {
	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}

	_, err := certs[0].Verify(x509.VerifyOptions{
		DNSName:       host,
		Intermediates: intermediates,
		CurrentTime:   now,
	})
	if err == nil {
		return nil
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return &domain.Finding{
			Category:    domain.CategoryCertificate,
			Severity:    domain.SeverityHigh,
			Title:       "certificate chain not trusted",
			Description: "the certificate chain does not lead to a trusted root, clients will see warnings",
			Remediation: "serve the full intermediate chain from a publicly trusted authority",
		}
	}

	return &domain.Finding{
		Category:    domain.CategoryCertificate,
		Severity:    domain.SeverityMedium,
		Title:       "certificate chain verification failed",
		Description: fmt.Sprintf("chain verification failed: %v", err),
		Remediation: "inspect the served certificate chain and fix the reported problem",
	}
}
