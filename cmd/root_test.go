package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fractionalhq/enrich-cli/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"links", "brand", "migrate"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "enrich-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestLinksCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range linksCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["regex"], "links should have subcommand regex")
	assert.True(t, names["ai"], "links should have subcommand ai")
}

func TestLinksCommands_Flags(t *testing.T) {
	for _, c := range linksCmd.Commands() {
		for _, flagName := range []string{"limit", "max-links", "all", "force", "dry-run"} {
			flag := c.Flags().Lookup(flagName)
			assert.NotNil(t, flag, "%s should have --%s flag", c.Name(), flagName)
		}
	}
}

func TestBrandFetchCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"provider", "limit", "dry-run", "domains"} {
		flag := brandFetchCmd.Flags().Lookup(flagName)
		require.NotNil(t, flag, "brand fetch should have --%s flag", flagName)
	}
	assert.Equal(t, "brandfetch", brandFetchCmd.Flags().Lookup("provider").DefValue)
}

func TestInitBrandFetcher(t *testing.T) {
	cfg = &config.Config{}
	cfg.Brandfetch.Key = "bf-key"
	cfg.Branddev.Key = "bd-key"

	oldProvider := brandProvider
	defer func() { brandProvider = oldProvider }()

	brandProvider = "brandfetch"
	fetcher, provider, notFound, err := initBrandFetcher()
	require.NoError(t, err)
	assert.NotNil(t, fetcher)
	assert.EqualValues(t, "brandfetch", provider)
	assert.NotNil(t, notFound)

	brandProvider = "branddev"
	fetcher, provider, notFound, err = initBrandFetcher()
	require.NoError(t, err)
	assert.NotNil(t, fetcher)
	assert.EqualValues(t, "branddev", provider)
	assert.NotNil(t, notFound)

	brandProvider = "logodev"
	_, _, _, err = initBrandFetcher()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown brand provider")
}

func TestDelayLimiter(t *testing.T) {
	assert.Nil(t, delayLimiter(0))
	assert.Nil(t, delayLimiter(-1))

	l := delayLimiter(0.5)
	require.NotNil(t, l)
	assert.Equal(t, rate.Every(500*time.Millisecond), l.Limit())
}

func TestLinkOptions_ConfigFallback(t *testing.T) {
	cfg = &config.Config{}
	cfg.Links.Limit = 42
	cfg.Links.MaxLinks = 2

	oldLimit, oldMax := linksLimit, linksMaxLinks
	defer func() { linksLimit, linksMaxLinks = oldLimit, oldMax }()

	linksLimit = 0
	linksMaxLinks = 0
	opts := linkOptions()
	assert.Equal(t, 42, opts.Limit)
	assert.Equal(t, 2, maxLinks())

	linksLimit = 5
	linksMaxLinks = 1
	opts = linkOptions()
	assert.Equal(t, 5, opts.Limit)
	assert.Equal(t, 1, maxLinks())

	oldAll := linksAll
	defer func() { linksAll = oldAll }()
	linksAll = true
	opts = linkOptions()
	assert.Equal(t, allJobsLimit, opts.Limit)
}

func TestStoreCommands_RequireDatabaseURL(t *testing.T) {
	cfg = &config.Config{}

	_, err := initStore(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}
