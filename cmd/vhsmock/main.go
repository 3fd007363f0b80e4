package main

import (
	"github.com/charmbracelet/log"

	"vhsmock/cmd/vhsmock/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}
