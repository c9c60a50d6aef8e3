package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patsoffice/arcadecore/i18n"
)

func TestEnglishLabelsMatchCanonicalNames(t *testing.T) {
	l := i18n.New("en")
	assert.Equal(t, "P1 Left", l.Label("P1 Left"))
	assert.Equal(t, "1 Player Start", l.Label("1 Player Start"))
}

func TestFrenchLabelsAreTranslated(t *testing.T) {
	l := i18n.New("fr")
	assert.Equal(t, "J1 Gauche", l.Label("P1 Left"))
	assert.Equal(t, "Départ 1 Joueur", l.Label("1 Player Start"))
}

func TestUnsupportedLocaleFallsBackToEnglish(t *testing.T) {
	l := i18n.New("de")
	assert.Equal(t, "Move Up", l.Label("Move Up"))
}

func TestUntranslatedNamePassesThroughUnchanged(t *testing.T) {
	l := i18n.New("fr")
	assert.Equal(t, "Some Future Button", l.Label("Some Future Button"))
}
