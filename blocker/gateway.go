package blocker

import (
	"context"
	"log/slog"
)

// Gateway applies and reverses site and app blocking.
type Gateway struct {
	Hosts *Hosts
	Apps  *Apps
}

// NewGateway returns a Gateway that edits the hosts file at hostsPath and
// kills processes running on this machine.
func NewGateway(hostsPath, redirectIP string, log *slog.Logger) *Gateway {
	return &Gateway{
		Hosts: &Hosts{
			Path:       hostsPath,
			RedirectIP: redirectIP,
		},
		Apps: &Apps{
			List: SystemProcesses,
			Log:  log,
		},
	}
}

func (g *Gateway) Block(sites, whitelist []string) (int, error) {
	return g.Hosts.Block(sites, whitelist)
}

func (g *Gateway) Unblock(sites []string) error {
	return g.Hosts.Unblock(sites)
}

func (g *Gateway) BlockApps(ctx context.Context, names []string) []string {
	return g.Apps.BlockApps(ctx, names)
}

// Reconfigure points the gateway at a different hosts file or redirect
// address. It is called when the configuration changes between sessions.
func (g *Gateway) Reconfigure(hostsPath, redirectIP string) {
	g.Hosts.mu.Lock()
	defer g.Hosts.mu.Unlock()

	g.Hosts.Path = hostsPath
	g.Hosts.RedirectIP = redirectIP
}
