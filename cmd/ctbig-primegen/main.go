// Command ctbig-primegen generates cryptographic primes, safe primes, and
// RSA moduli from the command line.
//
// Usage:
//
//	ctbig-primegen -bits 2048
//	ctbig-primegen -bits 2048 -safe -count 3 -json
//	ctbig-primegen -bits 4096 -rsa -o modulus.txt
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/agbru/ctbig/internal/app"
	apperrors "github.com/agbru/ctbig/internal/errors"
)

func main() {
	os.Exit(run())
}

// run contains the application logic, separated from main so that deferred
// cleanup runs before the process exits.
func run() int {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		// Help output is not a failure.
		if errors.Is(err, flag.ErrHelp) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	ctx, cancels := app.SetupLifecycle(context.Background(), application.Config.Timeout)
	defer cancels.Cleanup()

	return application.Run(ctx, os.Stdout)
}
