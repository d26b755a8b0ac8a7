// Package controller provides output adapters for displaying fixture configurations.
package controller

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCommand StartMode = iota
	ModeBrowse
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithCommandMode sets the UI to report the outcome of a write command.
func WithCommandMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCommand
	}
}

// WithBrowseMode sets the UI to browse stored configurations.
func WithBrowseMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBrowse
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var config StartConfig

	for _, option := range options {
		option(&config)
	}

	return config
}

// HistoryEntry is one stored event as shown by the history view.
type HistoryEntry struct {
	Sequence   int64
	RecordedAt time.Time
	Event      m.Event
}

// FixtureItemSummary is one row of the fixture item listing.
type FixtureItemSummary struct {
	ID          m.FixtureItemID
	Members     int
	UserMembers []string
	// InSession is set when the open session of the root holds the item.
	InSession bool
}

// UI defines the interface for reporting command outcomes and stored configurations.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEvents(ctx context.Context, command string, events []m.Event, err error) error
	DisplayConfiguration(ctx context.Context, item m.ConfigurationItem) error
	DisplayHistory(ctx context.Context, root string, entries []HistoryEntry) error
	DisplayFixtureItems(ctx context.Context, root string, items []FixtureItemSummary) error
}

// NewUI returns the interactive UI when useTTY is set and the plain one otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
