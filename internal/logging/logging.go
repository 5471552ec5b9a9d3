package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if DISKUSAGE_DEBUG environment variable is set
	if os.Getenv("DISKUSAGE_DEBUG") == "" {
		Debug = log.New(io.Discard, "", 0)
		Scanner = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scanner = log.New(os.Stderr, "[SCANNER] ", log.Ldate|log.Ltime)
		return
	}

	Debug = log.New(debugFile, "[DEBUG] ", log.Lmicroseconds)
	Scanner = log.New(debugFile, "[SCANNER] ", log.Lmicroseconds)
}

// SetOutput redirects both loggers to w, enabling them regardless of the
// environment. The returned function restores the previous writers.
func SetOutput(w io.Writer) func() {
	prevDebug, prevScanner, prevEnabled := Debug.Writer(), Scanner.Writer(), Enabled
	Debug.SetOutput(w)
	Scanner.SetOutput(w)
	Debug.SetFlags(log.Lmicroseconds)
	Scanner.SetFlags(log.Lmicroseconds)
	Enabled = true
	return func() {
		Debug.SetOutput(prevDebug)
		Scanner.SetOutput(prevScanner)
		Enabled = prevEnabled
	}
}
