package main

import (
	"fmt"
	"os"

	"github.com/muzammil922/dentalcare-reporter/components/worker/internal/bootstrap"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
)

func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitWorker()
	if err != nil {
		// The structured logger is initialized inside InitWorker, so stderr is
		// the only channel available at this point.
		fmt.Fprintf(os.Stderr, "Failed to initialize worker: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
