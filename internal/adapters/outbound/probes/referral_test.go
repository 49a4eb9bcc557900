package probes_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talowa/remedy/internal/adapters/outbound/probes"
)

func TestValidateCompleteReferralCode(t *testing.T) {
	cases := []struct {
		code  string
		valid bool
		why   string
	}{
		{"TALABC234", true, "well-formed code"},
		{"TALADMIN", true, "admin code is a policy exception"},
		{"TAL12345", false, "eight characters, one short"},
		{"TALOI1234", false, "contains ambiguous O, I and 1"},
		{"", false, "empty"},
		{"XYZABC234", false, "wrong prefix"},
		{"TALABC2345", false, "ten characters, one long"},
		{"talabc234", false, "lowercase is not in the charset"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.valid, probes.ValidateCompleteReferralCode(tc.code), tc.why)
		})
	}
}

func writeTargetFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReferralProbe_AmbiguousCharset(t *testing.T) {
	root := t.TempDir()
	writeTargetFile(t, root, "lib/services/referral/referral_code_service.dart",
		`final _pattern = RegExp(r'^TAL[A-Z0-9]{6}$');`)

	result := probes.NewReferralProbe(root).Run(context.Background())
	assert.False(t, result.Passed)
	assert.Equal(t, "ReferralCodeService", result.SuspectedModule)
}

func TestReferralProbe_StrictCharset(t *testing.T) {
	root := t.TempDir()
	writeTargetFile(t, root, "lib/services/referral/referral_code_service.dart",
		`final _pattern = RegExp(r'^TAL[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$');`)

	result := probes.NewReferralProbe(root).Run(context.Background())
	assert.True(t, result.Passed)
}

func TestReferralProbe_MissingSource(t *testing.T) {
	result := probes.NewReferralProbe(t.TempDir()).Run(context.Background())
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.ErrorDetails)
}
