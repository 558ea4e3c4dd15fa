package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu    sync.Mutex
	crashHooks []func()
)

// OnCrash registers a cleanup run before the crash report, e.g. restoring the terminal
func OnCrash(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHooks = append(crashHooks, fn)
}

// HandleCrash runs cleanup hooks, prints the panic with stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hooks := append([]func(){}, crashHooks...)
	crashMu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
