package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFallbackChain(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	// Direct hit.
	assert.Equal(t, "Impostazioni", l.Lookup("SettingsButton", "it"))

	// Unknown language falls back to the base language.
	assert.Equal(t, "Settings", l.Lookup("SettingsButton", "de"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "NoSuchKey", l.Lookup("NoSuchKey", "en"))
	assert.Equal(t, "NoSuchKey", l.Lookup("NoSuchKey", "zz"))
}

func TestLanguages(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	langs := l.Languages()

	assert.Equal(t, "English", langs["en"])
	assert.Equal(t, "Italiano", langs["it"])
}

func TestAllLocalesCoverBaseKeys(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	base := l.tables[BaseLanguage]

	for lang, table := range l.tables {
		if lang == BaseLanguage {
			continue
		}

		for key := range base {
			if _, ok := table[key]; !ok {
				t.Errorf("locale %s is missing key %s", lang, key)
			}
		}
	}
}
