// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pathmap translates Windows UNC and mapped-drive paths to local
// mount points using a line-oriented configuration table. It exists for
// server deployments where clients submit paths like
// \\fileserver\projects\... that are mounted locally under /mnt.
package pathmap

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// DefaultConfigPath is the well-known location of the mapping table on a
// deployed server.
const DefaultConfigPath = "/etc/asset-converter/path-mapping.conf"

// Mappings is the loaded translation table. The zero value (or an empty
// table) translates nothing and passes every path through unchanged,
// which is the local, non-server mode.
//
// Callers construct Mappings explicitly and pass it where needed; the
// table is not process-global state.
type Mappings struct {
	unc    map[string]string // "//server/share" (lowercased) -> mount point
	drives map[string]string // "T" (uppercased, no colon) -> mount point
}

// Load reads the mapping table from path. A missing file is not an
// error: it yields an empty table and a note on stderr, since local
// installations have no mappings to load.
func Load(path string) (*Mappings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "no path mapping file at %s, running in local mode\n", path)
			return &Mappings{}, nil
		}
		return nil, fmt.Errorf("opening path mapping file %s: %w", path, err)
	}
	defer f.Close()

	m := &Mappings{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := m.addLine(line); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s:%d: %v\n", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading path mapping file %s: %w", path, err)
	}
	return m, nil
}

// addLine parses one mapping entry. Two fields map a UNC share, three
// fields map a drive letter and also register the equivalent UNC entry.
// A duplicate key overwrites the earlier entry.
func (m *Mappings) addLine(line string) error {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 2:
		m.addUNC(parts[0], parts[1])
	case 3:
		drive := strings.ToUpper(strings.TrimSuffix(parts[0], ":"))
		if len(drive) != 1 || drive[0] < 'A' || drive[0] > 'Z' {
			return fmt.Errorf("invalid drive letter %q", parts[0])
		}
		if m.drives == nil {
			m.drives = make(map[string]string)
		}
		m.drives[drive] = parts[2]
		m.addUNC(parts[1], parts[2])
	default:
		return fmt.Errorf("expected 2 or 3 |-separated fields, got %d", len(parts))
	}
	return nil
}

func (m *Mappings) addUNC(smbPath, localPath string) {
	smbPath = strings.ReplaceAll(smbPath, `\`, "/")
	if !strings.HasPrefix(smbPath, "//") {
		smbPath = "//" + smbPath
	}
	if m.unc == nil {
		m.unc = make(map[string]string)
	}
	m.unc[strings.ToLower(smbPath)] = localPath
}

// Empty reports whether no mappings are loaded.
func (m *Mappings) Empty() bool {
	return m == nil || (len(m.unc) == 0 && len(m.drives) == 0)
}

// UNC returns a copy of the UNC mapping entries.
func (m *Mappings) UNC() map[string]string { return copyMap(m.unc) }

// Drives returns a copy of the drive-letter mapping entries.
func (m *Mappings) Drives() map[string]string { return copyMap(m.drives) }

var driveRe = regexp.MustCompile(`^([A-Za-z]):(/|$)(.*)`)

// Translate maps a Windows drive-letter or UNC path to its local mount
// point. Paths that match no mapping, and paths that are neither shape,
// come back unchanged; an unmapped but syntactically valid path logs a
// warning listing what is configured. Translation never fails.
func (m *Mappings) Translate(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}
	if m.Empty() {
		return path
	}

	original := path
	normalized := strings.ReplaceAll(strings.TrimSpace(path), `\`, "/")

	if match := driveRe.FindStringSubmatch(normalized); match != nil {
		drive := strings.ToUpper(match[1])
		remainder := match[3]

		mount, ok := m.drives[drive]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: no mapping for drive %s: (known: %s)\n", drive, keysOf(m.drives))
			return original
		}
		if remainder == "" {
			return mount
		}
		return mount + "/" + remainder
	}

	if strings.HasPrefix(normalized, "//") || strings.HasPrefix(original, `\\`) {
		trimmed := strings.TrimLeft(normalized, "/")
		parts := strings.SplitN(trimmed, "/", 3)
		if len(parts) >= 2 {
			key := strings.ToLower("//" + parts[0] + "/" + parts[1])
			mount, ok := m.unc[key]
			if !ok {
				fmt.Fprintf(os.Stderr, "warning: no mapping for %s (known: %s)\n", key, keysOf(m.unc))
				return original
			}
			if len(parts) == 3 && parts[2] != "" {
				return mount + "/" + parts[2]
			}
			return mount
		}
	}

	// Neither a drive-letter nor a UNC shape: already local.
	return original
}

func copyMap(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func keysOf(src map[string]string) string {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
