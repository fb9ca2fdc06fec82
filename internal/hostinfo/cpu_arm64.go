//go:build arm64

package hostinfo

import "golang.org/x/sys/cpu"

func cpuFeatures() []string {
	var f []string
	if cpu.ARM64.HasASIMD {
		f = append(f, "asimd")
	}
	if cpu.ARM64.HasSVE {
		f = append(f, "sve")
	}
	if cpu.ARM64.HasATOMICS {
		f = append(f, "atomics")
	}
	return f
}
