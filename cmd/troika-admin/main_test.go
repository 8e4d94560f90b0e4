package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("period", "", "")
	cmd.Flags().String("from", "", "")
	cmd.Flags().String("to", "", "")
	cmd.Flags().String("email", "", "")
	cmd.Flags().String("phone", "", "")
	cmd.Flags().String("session", "", "")
	cmd.Flags().Bool("guest", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestMessageFilterCustomRange(t *testing.T) {
	filter, err := messageFilter(filterCmd(t, "--from", "2026-05-01", "--to", "2026-05-03", "--guest", "--email", "a@b.c"))
	require.NoError(t, err)

	assert.Equal(t, 2026, filter.Start.Year())
	assert.Equal(t, time.May, filter.Start.Month())
	assert.Equal(t, 1, filter.Start.Day())
	assert.Equal(t, 3, filter.End.Day())
	assert.Equal(t, 23, filter.End.Hour())
	assert.True(t, filter.GuestOnly)
	assert.Equal(t, "a@b.c", filter.Email)
}

func TestMessageFilterNoDatesLeavesZero(t *testing.T) {
	filter, err := messageFilter(filterCmd(t))
	require.NoError(t, err)
	assert.True(t, filter.Start.IsZero())
	assert.True(t, filter.End.IsZero())
}

func TestMessageFilterRejectsBadInput(t *testing.T) {
	_, err := messageFilter(filterCmd(t, "--period", "fortnight"))
	assert.Error(t, err)

	_, err = messageFilter(filterCmd(t, "--from", "2026-05-03", "--to", "2026-05-01"))
	assert.Error(t, err)
}

func TestParseFeatureAndKind(t *testing.T) {
	_, err := parseFeature("ui")
	assert.NoError(t, err)
	_, err = parseFeature("billing")
	assert.Error(t, err)

	_, err = parseKind("social-links")
	assert.NoError(t, err)
	_, err = parseKind("links")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
