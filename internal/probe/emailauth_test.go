package probe_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"domainguard/internal/probe"
	"domainguard/pkg/domain"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	records map[string][]string
	err     error
}

func (f *fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	records, ok := f.records[name]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
	}

	return records, nil
}

func findingTitles(findings []domain.Finding) []string {
	titles := make([]string, 0, len(findings))
	for _, f := range findings {
		titles = append(titles, f.Title)
	}

	return titles
}

func TestEmailAuth_FullyConfiguredDomain(t *testing.T) {
	t.Parallel()

	p := probe.NewEmailAuth(&fakeResolver{records: map[string][]string{
		"example.com":        {"v=spf1 include:_spf.example.com -all"},
		"_dmarc.example.com": {"v=DMARC1; p=reject; rua=mailto:dmarc@example.com"},
	}})

	findings, err := p.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.Empty(t, findings)
}

func TestEmailAuth_MissingRecords(t *testing.T) {
	t.Parallel()

	p := probe.NewEmailAuth(&fakeResolver{records: map[string][]string{}})

	findings, err := p.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.ElementsMatch(t,
		[]string{"missing SPF record", "missing DMARC record"},
		findingTitles(findings))
	for _, f := range findings {
		require.Equal(t, domain.CategoryEmailSecurity, f.Category)
	}
}

func TestEmailAuth_DmarcPolicyNone(t *testing.T) {
	t.Parallel()

	p := probe.NewEmailAuth(&fakeResolver{records: map[string][]string{
		"example.com":        {"v=spf1 -all"},
		"_dmarc.example.com": {"v=DMARC1; p=none"},
	}})

	findings, err := p.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, "DMARC policy is none", findings[0].Title)
	require.Equal(t, domain.SeverityLow, findings[0].Severity)
}

func TestEmailAuth_ResolverFailure(t *testing.T) {
	t.Parallel()

	p := probe.NewEmailAuth(&fakeResolver{err: errors.New("servfail")})

	_, err := p.Inspect(context.Background(), "example.com")
	require.Error(t, err)
}
