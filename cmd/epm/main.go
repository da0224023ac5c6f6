package main

import (
	"github.com/lsst-ts/ts-epm/pkg/cli"
)

func main() {
	cli.Execute()
}
