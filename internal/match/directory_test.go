package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDomainInjectedDirectory(t *testing.T) {
	cfg := DefaultMatcherConfig()
	cfg.Directory = map[string]string{
		"acme capital":   "acmecap.com",
		"initech":        "initech.io",
		"hooli ventures": "hooli.xyz",
	}
	m := NewCompanyMatcher(cfg)

	d, ok := m.ResolveDomain("Acme Capital")
	require.True(t, ok)
	assert.Equal(t, "acmecap.com", d)

	// Token overlap path: "hooli" shares one of two tokens -> 50, below the
	// 60 threshold, so no accidental hit.
	_, ok = m.ResolveDomain("hooli dynamics")
	assert.False(t, ok)

	// But direct containment clears the bar.
	d, ok = m.ResolveDomain("initech inc")
	require.True(t, ok)
	assert.Equal(t, "initech.io", d)
}
