package main

import (
	"os"

	"github.com/aquatherm/poolsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
