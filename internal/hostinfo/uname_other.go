//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package hostinfo

func uname() (kernel, release, machine string) { return "", "", "" }
