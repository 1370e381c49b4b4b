package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/hae/internal/logger"
)

// UserMessager is implemented by errors that carry a message meant for the end user,
// such as a backend rejection.
type UserMessager interface {
	UserMessage() string
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage returns the user-facing message carried anywhere in err's chain,
// or fallback when there is none.
func UserMessage(err error, fallback string) string {
	var um UserMessager
	if stderrors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}

// Fatal logs err and exits with status 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
