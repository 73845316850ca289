//go:build linux

package main

import "github.com/urfave/cli/v2"

func platformFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "video-device",
			Aliases: []string{"d"},
			Usage:   "The path of the video device to monitor (e.g. /dev/video0). By default, all video devices are monitored",
		},
	}
}
