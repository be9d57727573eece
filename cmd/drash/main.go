package main

import (
	"os"

	"github.com/babarot/drash/internal/cli"
)

const appName = "drash"

// These variables are set in build step
var (
	Version   = "unset"
	Revision  = "unset"
	BuildDate = "unset"
)

func main() {
	err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   Version,
		Revision:  Revision,
		BuildDate: BuildDate,
	}, os.Args[1:])
	os.Exit(cli.Exit(os.Stderr, err))
}
