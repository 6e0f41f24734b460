package orchestrator_test

import (
	"testing"

	"domainguard/internal/orchestrator"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare domain", in: "example.com", want: "example.com"},
		{name: "uppercase", in: "EXAMPLE.Com", want: "example.com"},
		{name: "surrounding whitespace", in: "  example.com ", want: "example.com"},
		{name: "trailing dot", in: "example.com.", want: "example.com"},
		{name: "subdomain kept", in: "api.example.com", want: "api.example.com"},
		{name: "url reduced to host", in: "https://example.com/path?q=1", want: "example.com"},
		{name: "port dropped", in: "example.com:8443", want: "example.com"},
		{name: "url with port", in: "https://example.com:8443/x", want: "example.com"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "   ", wantErr: true},
		{name: "ip address", in: "192.0.2.10", wantErr: true},
		{name: "bare tld", in: "com", wantErr: true},
		{name: "localhost", in: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := orchestrator.NormalizeDomain(tt.in)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
