package controller

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// SimpleUI implements UI using the cobra command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEvents prints the events a command published and its outcome.
func (s *SimpleUI) DisplayEvents(ctx context.Context, command string, events []m.Event, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	for _, event := range events {
		s.printf("%s\n", DescribeEvent(event))
	}

	if err != nil {
		s.printf("%s failed [%s]: %v\n", command, errorLabel(err), err)
		return nil
	}

	s.printf("%s ok (%d event(s))\n", command, len(events))

	return nil
}

// DisplayConfiguration prints the members of item as a table.
func (s *SimpleUI) DisplayConfiguration(ctx context.Context, item m.ConfigurationItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n%s", item.ID(), renderConfigurationTable(item))

	return nil
}

// DisplayHistory prints the stored events of root in store order.
func (s *SimpleUI) DisplayHistory(ctx context.Context, root string, entries []HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(entries) == 0 {
		s.printf("No events recorded for %s\n", root)
		return nil
	}

	s.printf("%s\n\n%s", root, renderHistoryTable(entries))

	return nil
}

// DisplayFixtureItems prints the configured items of root.
func (s *SimpleUI) DisplayFixtureItems(ctx context.Context, root string, items []FixtureItemSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(items) == 0 {
		s.printf("No fixture items configured for %s\n", root)
		return nil
	}

	s.printf("%s\n\n%s", root, renderFixtureItemsTable(items))

	return nil
}

func renderConfigurationTable(item m.ConfigurationItem) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Member", "Kind", "Configuration", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	userCount := 0

	for _, name := range item.MemberNames() {
		mc, _ := item.Member(name)
		if !mc.Source().IsSystemDefault() {
			userCount++
		}

		table.Append([]string{name, string(mc.Kind()), DescribeMember(mc), DescribeSource(mc.Source())})
	}

	attributes := item.Attributes()
	for _, key := range slices.Sorted(maps.Keys(attributes)) {
		table.Append([]string{"@" + key, "attribute", attributes[key], ""})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Members %d", item.Len()),
		"",
		"",
		fmt.Sprintf("%d by user", userCount),
	})

	table.Render()

	return tableBuffer.String()
}

func renderHistoryTable(entries []HistoryEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Seq", "Recorded", "Kind", "Event"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	failures := 0

	for _, entry := range entries {
		if m.IsFailureEvent(entry.Event) {
			failures++
		}

		table.Append([]string{
			fmt.Sprintf("%d", entry.Sequence),
			entry.RecordedAt.Local().Format(time.DateTime),
			string(entry.Event.Kind()),
			DescribeEvent(entry.Event),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d", len(entries)),
		"",
		"",
		fmt.Sprintf("%d rejected", failures),
	})

	table.Render()

	return tableBuffer.String()
}

func renderFixtureItemsTable(items []FixtureItemSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Item", "Members", "Configured", "Session"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	open := 0

	for _, item := range items {
		session := ""
		if item.InSession {
			session = "open"
			open++
		}

		table.Append([]string{
			itemRef(item.ID),
			fmt.Sprintf("%d", item.Members),
			strings.Join(item.UserMembers, ", "),
			session,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Items %d", len(items)), "", "", fmt.Sprintf("%d open", open)})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
