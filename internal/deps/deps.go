// Package deps checks that the external tools a conversion run needs
// are installed before any work starts.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool the converter relies on.
type Requirement struct {
	Name    string
	Command string
}

// Status reports the availability of a tool.
type Status struct {
	Name      string
	Command   string
	Available bool
	Path      string
	Detail    string
}

// Converter returns the requirements for a conversion run using the
// given flac and lame binaries.
func Converter(flacBinary, lameBinary string) []Requirement {
	return []Requirement{
		{Name: "FLAC decoder", Command: flacBinary},
		{Name: "LAME encoder", Command: lameBinary},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:    req.Name,
			Command: cmd,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Missing filters statuses down to the unavailable ones.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}
