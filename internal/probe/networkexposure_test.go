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

// openPortsDialer pretends the given addresses accept TCP connections.
type openPortsDialer struct {
	open map[string]bool
}

func (d *openPortsDialer) dial(_ context.Context, _, addr string) (net.Conn, error) {
	if d.open[addr] {
		client, server := net.Pipe()
		go func() { _ = server.Close() }()

		return client, nil
	}

	return nil, errors.New("connection refused")
}

func TestNetworkExposure_AllPortsClosed(t *testing.T) {
	t.Parallel()

	dialer := &openPortsDialer{}
	p := probe.NewNetworkExposure(dialer.dial)

	findings, err := p.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.Empty(t, findings)
}

func TestNetworkExposure_CanceledContextFails(t *testing.T) {
	t.Parallel()

	dialer := &openPortsDialer{}
	p := probe.NewNetworkExposure(dialer.dial)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	findings, err := p.Inspect(ctx, "example.com")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, findings)
}

func TestNetworkExposure_ReportsOpenPorts(t *testing.T) {
	t.Parallel()

	dialer := &openPortsDialer{open: map[string]bool{
		"example.com:3389": true,
		"example.com:6379": true,
	}}
	p := probe.NewNetworkExposure(dialer.dial)

	findings, err := p.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.Len(t, findings, 2)
	for _, f := range findings {
		require.Equal(t, domain.CategoryNetworkExposure, f.Category)
		require.Equal(t, domain.SeverityCritical, f.Severity)
	}
}
