package hostinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	info := Collect()

	assert.Equal(t, runtime.GOOS, info.GOOS)
	assert.Equal(t, runtime.GOARCH, info.GOARCH)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Positive(t, info.NumCPU)
	if runtime.GOOS == "linux" {
		assert.Equal(t, "Linux", info.Kernel)
		assert.NotEmpty(t, info.Release)
	}
}

func TestString(t *testing.T) {
	info := Info{GOOS: "linux", GOARCH: "amd64", GoVersion: "go1.24.0", Kernel: "Linux", Release: "6.1.0", CPUFeatures: []string{"avx2", "fma"}}
	assert.Equal(t, "linux/amd64 Linux 6.1.0 go1.24.0 [avx2,fma]", info.String())

	assert.Equal(t, "plan9/386 go1.24.0", Info{GOOS: "plan9", GOARCH: "386", GoVersion: "go1.24.0"}.String())
}
