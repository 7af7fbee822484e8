//go:build !windows

package reader

func activeWindowTitle() string { return "" }
