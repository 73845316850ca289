package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/timrogers/litra-autotoggle"
	"github.com/timrogers/litra-autotoggle/internal/config"
	"github.com/timrogers/litra-autotoggle/internal/logging"
	"github.com/timrogers/litra-autotoggle/pkg/activity"
	"github.com/timrogers/litra-autotoggle/pkg/litra"
)

func main() {
	app := &cli.App{
		Name:   "litra-autotoggle",
		Usage:  "Automatically turn your Logitech Litra on when your webcam turns on, and off when your webcam turns off",
		Flags:  appFlags(),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func appFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config-file",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file. Values use underscored names (e.g. serial_number); command line arguments take precedence",
		},
		&cli.StringFlag{
			Name:    "serial-number",
			Aliases: []string{"s"},
			Usage:   "Target the device with this serial number. By default, all devices are targeted",
		},
		&cli.StringFlag{
			Name:    "device-path",
			Aliases: []string{"p"},
			Usage:   "Target the device at this path (useful for devices that don't report a serial number)",
		},
		&cli.StringFlag{
			Name:    "device-type",
			Aliases: []string{"y"},
			Usage:   "Target devices of this type (glow, beam or beam_lx)",
		},
		&cli.BoolFlag{
			Name:    "require-device",
			Aliases: []string{"r"},
			Usage:   "Exit with an error whenever a device is looked for and none is found",
		},
		&cli.Uint64Flag{
			Name:    "delay",
			Aliases: []string{"t"},
			Value:   1500,
			Usage:   "Milliseconds to wait after a webcam event before toggling, so bursts of events settle into a single action",
		},
		&cli.BoolFlag{
			Name:    "back-light",
			Aliases: []string{"b"},
			Usage:   "Also toggle the back light channel on devices that have one (Litra Beam LX)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Output detailed log messages",
		},
	}
	return append(flags, platformFlags()...)
}

func run(c *cli.Context) error {
	opts := config.Options{
		SerialNumber:  c.String("serial-number"),
		DevicePath:    c.String("device-path"),
		DeviceType:    c.String("device-type"),
		RequireDevice: c.Bool("require-device"),
		VideoDevice:   c.String("video-device"),
		Delay:         time.Duration(c.Uint64("delay")) * time.Millisecond,
		BackLight:     c.Bool("back-light"),
		Verbose:       c.Bool("verbose"),
	}

	if path := c.String("config-file"); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return err
		}
		opts = config.Merge(opts, c.IsSet("delay"), file)
	}

	// Validates the single-filter rule on the merged values.
	filter, err := autotoggle.NewDeviceFilter(opts.SerialNumber, opts.DevicePath, opts.DeviceType)
	if err != nil {
		return err
	}

	logging.SetVerbose(opts.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lights, err := litra.New()
	if err != nil {
		return err
	}
	defer lights.Close()

	source, err := activity.NewSource(activity.Config{
		VideoDevice: opts.VideoDevice,
		Logger:      logging.NewLogger("activity"),
	})
	if err != nil {
		return err
	}

	loop, err := autotoggle.NewLoop(autotoggle.LoopConfig{
		Enumerator:    lights,
		Filter:        filter,
		Source:        source,
		Delay:         opts.Delay,
		RequireDevice: opts.RequireDevice,
		BackLight:     opts.BackLight,
		Logger:        logging.NewLogger("autotoggle"),
	})
	if err != nil {
		return err
	}

	return loop.Run(ctx)
}
