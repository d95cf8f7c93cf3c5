package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/spf13/viper"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// userMessage turns known sentinel errors into short hints. Anything else
// is shown as is.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Error: record not found. Check the ID with a list command."
	case errors.Is(err, notify.ErrNoRecipient):
		return "Error: no recipient email. Pass --to or set notify.managerEmail."
	}
	return "Error: " + err.Error()
}
