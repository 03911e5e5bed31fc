//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package logger

func isTerminal(fd uintptr) bool {
	return false
}
