package main

import (
	"os"

	"fileport/cmd/fileport/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
