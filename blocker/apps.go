package blocker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Process is the subset of a running process the app blocker needs.
type Process interface {
	NameWithContext(ctx context.Context) (string, error)
	KillWithContext(ctx context.Context) error
}

// ProcessLister enumerates running processes.
type ProcessLister func(ctx context.Context) ([]Process, error)

// SystemProcesses lists the processes running on this machine.
func SystemProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]Process, len(procs))
	for i := range procs {
		list[i] = procs[i]
	}

	return list, nil
}

// Apps terminates running applications by process name. Termination is
// one-shot: an application started again afterwards is not blocked.
type Apps struct {
	List ProcessLister
	Log  *slog.Logger
}

// BlockApps kills every process whose name matches one of names (case
// insensitive) and returns the names of the processes killed.
func (a *Apps) BlockApps(ctx context.Context, names []string) []string {
	if len(names) == 0 {
		return nil
	}

	log := a.Log
	if log == nil {
		log = slog.Default()
	}

	list := a.List
	if list == nil {
		list = SystemProcesses
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	procs, err := list(ctx)
	if err != nil {
		log.ErrorContext(ctx, "listing processes failed", slog.Any("error", err))
		return nil
	}

	var killed []string

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !wanted[strings.ToLower(name)] {
			continue
		}

		if err := p.KillWithContext(ctx); err != nil {
			log.WarnContext(
				ctx,
				"failed to kill process",
				slog.String("name", name),
				slog.Any("error", err),
			)

			continue
		}

		log.InfoContext(ctx, "killed process", slog.String("name", name))

		killed = append(killed, name)
	}

	return killed
}
