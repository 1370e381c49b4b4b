package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current screen of the TUI
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Title   string
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "hae"
	DefaultKeyringUser = "api-token"
	Version            = "v0.1.0"

	// DateFormat is the wire and display format for calendar dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the 24-hour clock format used for schedule times (HH:MM)
	TimeFormat = "15:04"

	// TimeRangeSeparator joins start and end in a schedule time range
	TimeRangeSeparator = " - "

	// Storage constants
	JournalFileName = "hae.db"
	LogDirName      = "logs"
	LogFileName     = "hae.log"

	// Session lock
	LockfileName = "hae-form.lock"

	// HTTP constants
	RequestIDHeader      = "X-Request-ID"
	RequestIDMaxLen      = 64
	DefaultAPIBaseURL    = "http://localhost:8080"
	DefaultAPITimeout    = 15 * time.Second
	DefaultDevServerAddr = "127.0.0.1:8080"

	// DefaultNavigateDelay is how long a success notice stays up before leaving the form
	DefaultNavigateDelay = 2 * time.Second
)

const (
	StateLoading SessionState = iota
	StateForm
	StateConfirm
	StateSubmitting
	StateDone
	StateFailed
	// StateReadOnly shows a COMPLETO record without a form
	StateReadOnly
)
