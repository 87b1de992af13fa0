// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"log"
	"os"

	"github.com/ezrec/bfc/backend"
	"github.com/ezrec/bfc/internal/cli"
)

func main() {
	log.SetFlags(0)

	err := cli.NewRootCmd().Execute()

	var exit backend.ErrExit
	if errors.As(err, &exit) {
		os.Exit(int(exit))
	}

	if err != nil {
		log.Fatalf("bfc: %v", err)
	}
}
