//go:build !linux

package main

import "github.com/urfave/cli/v2"

func platformFlags() []cli.Flag {
	return nil
}
