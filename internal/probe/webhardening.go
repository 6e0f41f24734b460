package probe

import (
	"context"
	"fmt"
	"net/http"

	"domainguard/pkg/domain"
)

// headerCheck describes one security header the web hardening probe expects.
type headerCheck struct {
	header      string
	severity    domain.Severity
	title       string
	description string
	remediation string
}

var headerChecks = []headerCheck{
	{
		header:      "Strict-Transport-Security",
		severity:    domain.SeverityMedium,
		title:       "missing HSTS header",
		description: "without Strict-Transport-Security browsers may downgrade to plain HTTP",
		remediation: "send Strict-Transport-Security with a max-age of at least one year",
	},
	{
		header:      "Content-Security-Policy",
		severity:    domain.SeverityMedium,
		title:       "missing Content-Security-Policy header",
		description: "without a CSP any injected script runs with full page privileges",
		remediation: "define a Content-Security-Policy restricting script and resource origins",
	},
	{
		header:      "X-Content-Type-Options",
		severity:    domain.SeverityLow,
		title:       "missing X-Content-Type-Options header",
		description: "without nosniff browsers may MIME-sniff responses into executable types",
		remediation: "send X-Content-Type-Options: nosniff",
	},
	{
		header:      "X-Frame-Options",
		severity:    domain.SeverityLow,
		title:       "missing X-Frame-Options header",
		description: "without framing protection the site can be embedded for clickjacking",
		remediation: "send X-Frame-Options: DENY or a frame-ancestors CSP directive",
	},
	{
		header:      "Referrer-Policy",
		severity:    domain.SeverityLow,
		title:       "missing Referrer-Policy header",
		description: "full referrer URLs may leak to third parties",
		remediation: "send Referrer-Policy: strict-origin-when-cross-origin or stricter",
	},
}

// WebHardening fetches the domain's HTTPS root and reports missing security
// response headers.
type WebHardening struct {
	client *http.Client
	// BaseURL overrides the probed URL scheme+host in tests. Empty in production.
	BaseURL string
}

// NewWebHardening creates the web hardening probe. A nil client uses
// http.DefaultClient.
func NewWebHardening(client *http.Client) *WebHardening {
	if client == nil {
		client = http.DefaultClient
	}

	return &WebHardening{client: client}
}

// Name implements Probe.
func (*WebHardening) Name() string { return "web-hardening" }

// Category implements Probe.
func (*WebHardening) Category() domain.FindingCategory { return domain.CategoryWebHardening }

// Inspect implements Probe.
func (w *WebHardening) Inspect(ctx context.Context, host string) ([]domain.Finding, error) {
	url := w.BaseURL
	if url == "" {
		url = "https://" + host + "/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var findings []domain.Finding
	for _, check := range headerChecks {
		if resp.Header.Get(check.header) != "" {
			continue
		}
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryWebHardening,
			Severity:    check.severity,
			Title:       check.title,
			Description: check.description,
			Remediation: check.remediation,
		})
	}

	return findings, nil
}
