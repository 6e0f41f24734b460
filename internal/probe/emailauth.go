package probe

import (
	"context"
	"errors"
	"net"
	"strings"

	"domainguard/pkg/domain"
)

// Resolver is the subset of net.Resolver used by the email auth probe,
// extracted so tests can inject canned DNS answers.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// EmailAuth checks the domain's email authentication posture: the presence of
// SPF and DMARC records and the strictness of the DMARC policy.
type EmailAuth struct {
	resolver Resolver
}

// NewEmailAuth creates the email auth probe. A nil resolver uses the system DNS.
func NewEmailAuth(resolver Resolver) *EmailAuth {
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	return &EmailAuth{resolver: resolver}
}

// Name implements Probe.
func (*EmailAuth) Name() string { return "email-auth" }

// Category implements Probe.
func (*EmailAuth) Category() domain.FindingCategory { return domain.CategoryEmailSecurity }

// Inspect implements Probe.
func (e *EmailAuth) Inspect(ctx context.Context, host string) ([]domain.Finding, error) {
	var findings []domain.Finding

	spf, err := e.lookup(ctx, host)
	if err != nil {
		return nil, err
	}
	if !hasRecordWithPrefix(spf, "v=spf1") {
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryEmailSecurity,
			Severity:    domain.SeverityMedium,
			Title:       "missing SPF record",
			Description: "no TXT record starting with v=spf1 was found, so receivers cannot verify which servers may send mail for this domain",
			Remediation: "publish a TXT record starting with v=spf1 listing your authorized mail senders",
		})
	}

	dmarc, err := e.lookup(ctx, "_dmarc."+host)
	if err != nil {
		return nil, err
	}
	dmarcRecord, ok := firstRecordWithPrefix(dmarc, "v=DMARC1")
	switch {
	case !ok:
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryEmailSecurity,
			Severity:    domain.SeverityHigh,
			Title:       "missing DMARC record",
			Description: "no _dmarc TXT record was found, leaving the domain open to spoofing",
			Remediation: "publish a _dmarc TXT record with at least p=quarantine",
		})
	case dmarcPolicy(dmarcRecord) == "none":
		findings = append(findings, domain.Finding{
			Category:    domain.CategoryEmailSecurity,
			Severity:    domain.SeverityLow,
			Title:       "DMARC policy is none",
			Description: "the DMARC record exists but p=none means spoofed mail is still delivered",
			Remediation: "tighten the DMARC policy to p=quarantine or p=reject",
		})
	}

	return findings, nil
}

// lookup wraps LookupTXT, treating NXDOMAIN-class answers as an empty record
// set rather than a probe failure.
func (e *EmailAuth) lookup(ctx context.Context, name string) ([]string, error) {
	records, err := e.resolver.LookupTXT(ctx, name)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, nil
		}

		return nil, err
	}

	return records, nil
}

func hasRecordWithPrefix(records []string, prefix string) bool {
	_, ok := firstRecordWithPrefix(records, prefix)

	return ok
}

func firstRecordWithPrefix(records []string, prefix string) (string, bool) {
	for _, r := range records {
		if strings.HasPrefix(strings.TrimSpace(r), prefix) {
			return r, true
		}
	}

	return "", false
}

// dmarcPolicy extracts the p= tag value from a DMARC record.
func dmarcPolicy(record string) string {
	for _, part := range strings.Split(record, ";") {
		part = strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(part, "p="); ok {
			return strings.ToLower(strings.TrimSpace(value))
		}
	}

	return ""
}
