package main

import (
	"fmt"
	"os"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/bootstrap"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
)

func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitServers()
	if err != nil {
		// The structured logger is initialized inside InitServers, so stderr is
		// the only channel available at this point.
		fmt.Fprintf(os.Stderr, "Failed to initialize manager: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
