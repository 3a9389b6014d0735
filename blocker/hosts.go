// Package blocker blocks websites through the system hosts file and
// terminates blocked applications
package blocker

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/ayoisaiah/detox/internal/osutil"
)

// Hosts adds and removes redirect entries in a hosts file.
type Hosts struct {
	Path       string
	RedirectIP string
	mu         sync.Mutex
}

// NormalizeSite reduces a configured site to a bare lowercase host name
// so that "https://www.Example.com/path" and "example.com" compare equal.
func NormalizeSite(site string) string {
	s := strings.ToLower(strings.TrimSpace(site))

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}

	return strings.TrimPrefix(s, "www.")
}

// variants returns the host names that are redirected for a site.
func variants(site string) []string {
	return []string{site, "www." + site}
}

// Block adds an entry for each site and its www variant that is not already
// present, skipping whitelisted sites. It returns the number of entries added.
func (h *Hosts) Block(sites, whitelist []string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	allowed := make(map[string]bool, len(whitelist))
	for _, w := range whitelist {
		allowed[NormalizeSite(w)] = true
	}

	content, err := h.read()
	if err != nil {
		return 0, err
	}

	present := h.redirectedHosts(content)

	var buf bytes.Buffer

	for _, site := range sites {
		site = NormalizeSite(site)
		if site == "" || allowed[site] {
			continue
		}

		for _, host := range variants(site) {
			if present[host] {
				continue
			}

			present[host] = true

			buf.WriteString(h.RedirectIP + " " + host + "\n")
		}
	}

	added := strings.Count(buf.String(), "\n")
	if added == 0 {
		return 0, nil
	}

	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		content = append(content, '\n')
	}

	err = h.write(append(content, buf.Bytes()...))
	if err != nil {
		return 0, err
	}

	return added, nil
}

// Unblock removes the redirect entries for the given sites. Lines that map
// the same hosts to a different address are left alone.
func (h *Hosts) Unblock(sites []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	blocked := make(map[string]bool)

	for _, site := range sites {
		site = NormalizeSite(site)
		if site == "" {
			continue
		}

		for _, host := range variants(site) {
			blocked[host] = true
		}
	}

	content, err := h.read()
	if err != nil {
		return err
	}

	var (
		out     bytes.Buffer
		removed bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		if h.isRedirectFor(line, blocked) {
			removed = true
			continue
		}

		out.WriteString(line + "\n")
	}

	if err := scanner.Err(); err != nil {
		return ErrIO.Fmt(h.Path).Wrap(err)
	}

	if !removed {
		return nil
	}

	return h.write(out.Bytes())
}

// isRedirectFor reports whether line redirects only hosts from the set.
func (h *Hosts) isRedirectFor(line string, hosts map[string]bool) bool {
	ip, names, ok := parseLine(line)
	if !ok || ip != h.RedirectIP {
		return false
	}

	return !slices.ContainsFunc(names, func(n string) bool {
		return !hosts[n]
	})
}

// redirectedHosts returns the hosts already mapped to the redirect address.
func (h *Hosts) redirectedHosts(content []byte) map[string]bool {
	present := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		ip, names, ok := parseLine(scanner.Text())
		if !ok || ip != h.RedirectIP {
			continue
		}

		for _, n := range names {
			present[n] = true
		}
	}

	return present
}

// parseLine splits a hosts file line into its address and host names.
func parseLine(line string) (ip string, names []string, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", nil, false
	}

	for _, f := range fields[1:] {
		names = append(names, strings.ToLower(f))
	}

	return fields[0], names, true
}

func (h *Hosts) read() ([]byte, error) {
	b, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, h.wrapErr(err)
	}

	return b, nil
}

func (h *Hosts) write(b []byte) error {
	var perm fs.FileMode = osutil.FilePermission

	if fi, err := os.Stat(h.Path); err == nil {
		perm = fi.Mode().Perm()
	}

	if err := os.WriteFile(h.Path, b, perm); err != nil {
		return h.wrapErr(err)
	}

	return nil
}

func (h *Hosts) wrapErr(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return ErrPermissionDenied.Fmt(h.Path).Wrap(err)
	}

	return ErrIO.Fmt(h.Path).Wrap(err)
}
