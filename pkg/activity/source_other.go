//go:build !linux && !windows && !darwin

package activity

import (
	"fmt"
	"runtime"
)

func newSource(Config) (Source, error) {
	return nil, fmt.Errorf("activity: webcam monitoring is not supported on %s", runtime.GOOS)
}
