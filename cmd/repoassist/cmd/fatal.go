package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/release"
)

// exitCriticalRollback tells scripts that the repository needs manual cleanup
const exitCriticalRollback = 3

var (
	// patched by tests, to catch exits

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// infoLogger prints results on stdout, errLogger prints critical failures on stderr
	infoLogger = log.New(os.Stdout, "", 0)
	errLogger  = log.New(os.Stderr, "", 0)
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
		return
	}
	logFatalf("%v", fmt.Errorf(msg+": %w", err))
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	errLogger.Printf(format, args...)
	osExit(code)
}

// releaseFatal exits with a dedicated code when a failed release could not be rolled back
func releaseFatal(msg string, err error) {
	if errors.Is(err, release.ErrCritical) {
		wrapFatalWithCodef(exitCriticalRollback, "%s: %v", msg, err)
		return
	}
	wrapFatalln(msg, err)
}
