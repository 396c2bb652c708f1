// Package log is the application logger. Development builds write to stderr with
// debug output; release builds write to a rotating file.
package log

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// debugEnabled controls Debug and Debugf output.
var debugEnabled atomic.Bool

// SetDebug turns debug output on or off.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func output(s string) {
	log.Output(3, s)
}

// Print logs its operands like fmt.Sprint.
func Print(v ...any) {
	output(fmt.Sprint(v...))
}

// Printf logs a formatted line.
func Printf(format string, v ...any) {
	output(fmt.Sprintf(format, v...))
}

// Println logs its operands like fmt.Sprintln.
func Println(v ...any) {
	output(fmt.Sprintln(v...))
}

// Fatal logs like Print and exits.
func Fatal(v ...any) {
	output(fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs like Printf and exits.
func Fatalf(format string, v ...any) {
	output(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln logs like Println and exits.
func Fatalln(v ...any) {
	output(fmt.Sprintln(v...))
	os.Exit(1)
}

// Debug logs with a [DEBUG] prefix when debug output is enabled.
func Debug(v ...any) {
	if debugEnabled.Load() {
		output("[DEBUG] " + fmt.Sprint(v...))
	}
}

// Debugf logs a formatted line with a [DEBUG] prefix when debug output is enabled.
func Debugf(format string, v ...any) {
	if debugEnabled.Load() {
		output("[DEBUG] " + fmt.Sprintf(format, v...))
	}
}
