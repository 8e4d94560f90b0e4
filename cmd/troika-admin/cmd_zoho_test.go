package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
)

func zohoFlagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("client-id", "", "")
	cmd.Flags().String("client-secret", "", "")
	cmd.Flags().String("domain", defaultZohoDomain, "")
	cmd.Flags().String("module", defaultZohoModule, "")
	cmd.Flags().Bool("enable", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestApplyZohoFlagsKeepsStoredConfig(t *testing.T) {
	form := &forms.ZohoConfigForm{
		ClientID:     "stored-id",
		ClientSecret: "stored-secret",
		Domain:       "zoho.eu",
		Module:       "Contacts",
		FieldMapping: map[string]string{"name": "Last_Name"},
		Keywords:     []string{"quote"},
	}
	require.NoError(t, applyZohoFlags(zohoFlagsCmd(t, "--client-secret", "new-secret"), form))

	assert.Equal(t, "stored-id", form.ClientID)
	assert.Equal(t, "new-secret", form.ClientSecret)
	assert.Equal(t, "zoho.eu", form.Domain)
	assert.Equal(t, "Contacts", form.Module)
	assert.False(t, form.Enabled)
	assert.Equal(t, []string{"quote"}, form.Keywords)
}

func TestApplyZohoFlagsFillsDefaultsAndEnable(t *testing.T) {
	form := &forms.ZohoConfigForm{}
	require.NoError(t, applyZohoFlags(zohoFlagsCmd(t, "--client-id", "cid", "--enable"), form))

	assert.Equal(t, "cid", form.ClientID)
	assert.Equal(t, defaultZohoDomain, form.Domain)
	assert.Equal(t, defaultZohoModule, form.Module)
	assert.True(t, form.Enabled)

	require.NoError(t, applyZohoFlags(zohoFlagsCmd(t, "--enable=false"), form))
	assert.False(t, form.Enabled)
}
