package ui

import (
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// exit is replaced in tests
var exit = os.Exit

// pterm printers are shared globals, turbines log from multiple goroutines
var outputMutex sync.Mutex

func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

func Printf(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Error.Printfln(format, a...)
}

// Fatal prints the message and exits the process with a non-zero exit code
func Fatal(format string, a ...interface{}) {
	outputMutex.Lock()
	defer outputMutex.Unlock()
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the message as an error and exits with code 1,
// without pterm's panic based fatal handling
func FatalWithoutStacktrace(format string, a ...interface{}) {
	Error(format, a...)
	exit(1)
}
