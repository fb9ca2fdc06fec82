// Package hostinfo describes the machine a benchmark ran on.
package hostinfo

import (
	"os"
	"runtime"
	"strings"
)

// Info is recorded in the run manifest so timings can be compared across
// machines.
type Info struct {
	Hostname    string   `json:"hostname,omitempty"`
	GOOS        string   `json:"goos"`
	GOARCH      string   `json:"goarch"`
	GoVersion   string   `json:"go_version"`
	NumCPU      int      `json:"num_cpu"`
	Kernel      string   `json:"kernel,omitempty"`
	Release     string   `json:"release,omitempty"`
	Machine     string   `json:"machine,omitempty"`
	CPUFeatures []string `json:"cpu_features,omitempty"`
}

// Collect gathers host details. Fields that cannot be determined are left
// empty.
func Collect() Info {
	info := Info{
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		GoVersion:   runtime.Version(),
		NumCPU:      runtime.NumCPU(),
		CPUFeatures: cpuFeatures(),
	}
	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	}
	info.Kernel, info.Release, info.Machine = uname()
	return info
}

// String returns a one-line summary.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.GOOS)
	b.WriteByte('/')
	b.WriteString(i.GOARCH)
	if i.Release != "" {
		b.WriteString(" ")
		b.WriteString(i.Kernel)
		b.WriteString(" ")
		b.WriteString(i.Release)
	}
	b.WriteString(" ")
	b.WriteString(i.GoVersion)
	if len(i.CPUFeatures) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(i.CPUFeatures, ","))
		b.WriteString("]")
	}
	return b.String()
}
