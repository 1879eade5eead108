package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/tenantload/internal/cli"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(tenantload.ExitPanic)
		}
	}()

	if os.Getenv("TENANTLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(tenantload.ExitCodeForError(err))
	}
}
