package main

import (
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/cmd"
	"github.com/firefly-engineering/firefly-forage/packages/forage-remote/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
