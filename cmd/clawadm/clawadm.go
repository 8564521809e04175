package main

import (
	"os"

	"github.com/openclaw/clawadm/internal/clawadm/cmd"
)

func main() {
	command := cmd.NewDefaultClawAdmCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
