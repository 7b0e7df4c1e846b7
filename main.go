package main

import (
	"log"

	"github.com/albumix/albumix/cmd"
	"github.com/albumix/albumix/config"
)

func main() {
	log.Printf("albumix %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
