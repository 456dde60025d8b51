package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}
	var ee *exitError
	if !errors.As(err, &ee) || !ee.reported {
		fmt.Fprintln(os.Stderr, "go-cdoc:", err)
	}
	os.Exit(exitCode(err))
}
