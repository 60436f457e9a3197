package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeSynonyms(t *testing.T) {
	assert.Equal(t, "Cardstock", Canonicalize("card stock"))
	assert.Equal(t, "Cardstock", Canonicalize("Heavy Cardstock"))
	assert.Equal(t, "Banner paper", Canonicalize("banner"))
}

func TestCanonicalizeExactNameIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "A4 paper", Canonicalize("a4 PAPER"))
	assert.Equal(t, "Glossy paper", Canonicalize("  glossy paper  "))
}

func TestCanonicalizeSubstringContainment(t *testing.T) {
	// A canonical name buried inside a longer description still resolves.
	assert.Equal(t, "Glossy paper", Canonicalize("500 sheets of glossy paper for brochures"))
}

func TestCanonicalizeFuzzyTypo(t *testing.T) {
	assert.Equal(t, "Glossy paper", Canonicalize("glossy papr"))
	assert.Equal(t, "Cardstock", Canonicalize("cardstok"))
}

func TestCanonicalizeUnresolvable(t *testing.T) {
	assert.Equal(t, "", Canonicalize(""))
	assert.Equal(t, "", Canonicalize("   "))
	assert.Equal(t, "", Canonicalize("industrial lathe"))
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"a4 paper", "standard copy paper", "glossy papr",
		"500 sheets of glossy paper", "cardstock",
	}
	for _, input := range inputs {
		once := Canonicalize(input)
		if once == "" {
			continue
		}
		assert.Equal(t, once, Canonicalize(once), "input %q", input)
	}
}

func TestCanonicalizeEveryCatalogNameMapsToItself(t *testing.T) {
	for _, name := range Names() {
		assert.Equal(t, name, Canonicalize(name))
	}
}
