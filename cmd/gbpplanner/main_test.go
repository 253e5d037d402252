package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_Defaults(t *testing.T) {
	opts, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "circle", opts.initialScenario)
	assert.True(t, opts.headless)
	assert.Equal(t, verbosity(0), opts.verbose)
}

func TestParseArgs_RepeatableVerbose(t *testing.T) {
	opts, err := parseArgs([]string{"--verbose", "--verbose"})
	require.NoError(t, err)
	assert.Equal(t, verbosity(2), opts.verbose)

	opts, err = parseArgs([]string{"--verbose", "--verbose", "--verbose", "--verbose"})
	require.NoError(t, err)
	assert.Equal(t, verbosity(maxVerbosity), opts.verbose, "verbosity saturates at its cap")
}

func TestParseArgs_RejectsPositional(t *testing.T) {
	_, err := parseArgs([]string{"stray"})
	assert.Error(t, err)
}

func TestDumpDefault_UnknownTarget(t *testing.T) {
	code, err := dumpDefault("nonsense")
	assert.Equal(t, exitBadArgs, code)
	assert.Error(t, err)
}

func TestDumpEnvironment_Unknown(t *testing.T) {
	code, err := dumpEnvironment("atlantis")
	assert.Equal(t, exitBadArgs, code)
	assert.Error(t, err)
}
