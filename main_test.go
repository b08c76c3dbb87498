package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	config, debugLog, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, config.TimeoutMS)
	assert.False(t, config.ExitOnHide)
	assert.False(t, debugLog)
}

func TestParseArgsTimeoutConvertedToMilliseconds(t *testing.T) {
	config, _, err := parseArgs([]string{"-s", "90"})
	require.NoError(t, err)
	assert.Equal(t, 90000, config.TimeoutMS)
}

func TestParseArgsExitOnHide(t *testing.T) {
	config, _, err := parseArgs([]string{"-e"})
	require.NoError(t, err)
	assert.True(t, config.ExitOnHide)
}

func TestParseArgsCombined(t *testing.T) {
	config, debugLog, err := parseArgs([]string{"-s", "5", "-e", "-log"})
	require.NoError(t, err)
	assert.Equal(t, 5000, config.TimeoutMS)
	assert.True(t, config.ExitOnHide)
	assert.True(t, debugLog)
}

func TestParseArgsRejectsBadTimeouts(t *testing.T) {
	cases := [][]string{
		{"-s", "abc"},
		{"-s", "-5"},
		{"-s", "0"},
		{"-s"},
	}
	for _, args := range cases {
		_, _, err := parseArgs(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestParseArgsRejectsUnknownArguments(t *testing.T) {
	_, _, err := parseArgs([]string{"-x"})
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"extra"})
	assert.Error(t, err)
}
