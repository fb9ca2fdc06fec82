//go:build !amd64 && !arm64

package hostinfo

func cpuFeatures() []string { return nil }
