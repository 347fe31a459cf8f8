// main is the entry point for the sonarsheet CLI.
package main

import (
	"github.com/sonarsheet/sonarsheet/cmd"
	"github.com/sonarsheet/sonarsheet/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
