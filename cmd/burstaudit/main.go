// main is the entry point for the burstaudit CLI.
package main

import (
	"github.com/burstaudit/burstaudit/cmd"
	"github.com/burstaudit/burstaudit/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
