package autotoggle

import (
	"github.com/pion/logging"

	"github.com/timrogers/litra-autotoggle/pkg/litra"
)

// Result aggregates the per-light outcomes of applying one decision.
type Result struct {
	Applied int
	Failed  int
}

// Controller applies stabilized decisions to the resolved lights. A failure
// on one light never aborts the others.
type Controller struct {
	backLight bool
	logger    logging.LeveledLogger
}

func NewController(backLight bool, logger logging.LeveledLogger) *Controller {
	return &Controller{backLight: backLight, logger: logger}
}

// Apply sets every light to the given power state, independently. Lights
// are counted as applied or failed by their front channel alone: a rear
// channel failure, including litra.ErrBackLightUnsupported on models
// without one, is only logged.
func (c *Controller) Apply(on bool, lights []litra.Light) Result {
	var res Result
	for _, l := range lights {
		c.logger.Infof("turning %s %s device (serial number: %s)", onOff(on), l.Model(), serialOrDash(l))

		if err := l.SetPower(on); err != nil {
			c.logger.Warnf("failed to turn %s %s device (serial number: %s): %v", onOff(on), l.Model(), serialOrDash(l), err)
			res.Failed++
			continue
		}
		res.Applied++

		if !c.backLight {
			continue
		}
		if err := l.SetBackPower(on); err != nil {
			c.logger.Warnf("failed to turn %s back light on %s device (serial number: %s): %v", onOff(on), l.Model(), serialOrDash(l), err)
		}
	}
	return res
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func serialOrDash(l litra.Light) string {
	if serial := l.Serial(); serial != "" {
		return serial
	}
	return "-"
}
