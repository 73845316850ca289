//go:build windows

package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/pion/logging"
	"golang.org/x/sys/windows/registry"
)

// Consent-store locations where Windows records, per application, when the
// webcam capability was last started and stopped.
const consentStoreKey = `Software\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\webcam`

// consentSource polls the webcam consent store and reports edges of the
// aggregate "any application is using the camera" state.
type consentSource struct {
	interval time.Duration
	logger   logging.LeveledLogger
}

func newSource(cfg Config) (Source, error) {
	return &consentSource{interval: cfg.PollInterval, logger: cfg.Logger}, nil
}

func (s *consentSource) Watch(ctx context.Context, events chan<- Event) error {
	// Opening the store once up front distinguishes a broken setup from
	// the transient read failures tolerated below.
	key, err := registry.OpenKey(registry.CURRENT_USER, consentStoreKey, registry.READ)
	if err != nil {
		return fmt.Errorf("activity: open webcam consent store: %w", err)
	}
	key.Close()
	s.logger.Infof("polling webcam consent store every %s", s.interval)

	var track usageTracker
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			active, err := anyWebcamInUse()
			if err != nil {
				// Unreadable this cycle means no change.
				s.logger.Debugf("consent store unreadable: %v", err)
				continue
			}
			ev, changed := track.observe(active)
			if !changed {
				continue
			}
			if ev.Kind == GlobalActive {
				s.logger.Info("detected that a video device has been turned on")
			} else {
				s.logger.Info("detected that a video device has been turned off")
			}
			if !send(ctx, events, ev) {
				return nil
			}
		}
	}
}

// anyWebcamInUse scans both the packaged-app entries and the NonPackaged
// subtree of the consent store.
func anyWebcamInUse() (bool, error) {
	active, err := scanConsentKey(consentStoreKey, false)
	if err != nil {
		return false, err
	}
	if active {
		return true, nil
	}
	return scanConsentKey(consentStoreKey+`\NonPackaged`, true)
}

func scanConsentKey(path string, optional bool) (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.READ)
	if err != nil {
		if optional && err == registry.ErrNotExist {
			return false, nil
		}
		return false, err
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == "NonPackaged" {
			continue
		}
		entry, err := registry.OpenKey(key, name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		start, _, startErr := entry.GetIntegerValue("LastUsedTimeStart")
		stop, _, stopErr := entry.GetIntegerValue("LastUsedTimeStop")
		entry.Close()
		if startErr != nil || stopErr != nil {
			continue
		}
		if consentInUse(start, stop) {
			return true, nil
		}
	}
	return false, nil
}
