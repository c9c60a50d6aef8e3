package i18n

import "github.com/nicksnyder/go-i18n/v2/i18n"

// englishMessages and frenchMessages catalog every machine.InputButton.Name
// this module's game wrappers (machine/joust, machine/robotron,
// machine/missilecommand) produce. English IDs double as their own Other
// text by convention, so the catalog only needs entries for locales that
// actually translate something.
var englishMessages = []*i18n.Message{
	{ID: "P1 Left", Other: "P1 Left"},
	{ID: "P1 Right", Other: "P1 Right"},
	{ID: "P1 Flap", Other: "P1 Flap"},
	{ID: "P2 Left", Other: "P2 Left"},
	{ID: "P2 Right", Other: "P2 Right"},
	{ID: "P2 Flap", Other: "P2 Flap"},
	{ID: "1 Player Start", Other: "1 Player Start"},
	{ID: "2 Player Start", Other: "2 Player Start"},
	{ID: "Move Up", Other: "Move Up"},
	{ID: "Move Down", Other: "Move Down"},
	{ID: "Move Left", Other: "Move Left"},
	{ID: "Move Right", Other: "Move Right"},
	{ID: "Fire Up", Other: "Fire Up"},
	{ID: "Fire Down", Other: "Fire Down"},
	{ID: "Fire Left", Other: "Fire Left"},
	{ID: "Fire Right", Other: "Fire Right"},
	{ID: "Coin", Other: "Coin"},
	{ID: "Fire Center", Other: "Fire Center"},
	{ID: "Trackball Left", Other: "Trackball Left"},
	{ID: "Trackball Right", Other: "Trackball Right"},
	{ID: "Trackball Up", Other: "Trackball Up"},
	{ID: "Trackball Down", Other: "Trackball Down"},
}

var frenchMessages = []*i18n.Message{
	{ID: "P1 Left", Other: "J1 Gauche"},
	{ID: "P1 Right", Other: "J1 Droite"},
	{ID: "P1 Flap", Other: "J1 Battement"},
	{ID: "P2 Left", Other: "J2 Gauche"},
	{ID: "P2 Right", Other: "J2 Droite"},
	{ID: "P2 Flap", Other: "J2 Battement"},
	{ID: "1 Player Start", Other: "Départ 1 Joueur"},
	{ID: "2 Player Start", Other: "Départ 2 Joueurs"},
	{ID: "Move Up", Other: "Haut"},
	{ID: "Move Down", Other: "Bas"},
	{ID: "Move Left", Other: "Gauche"},
	{ID: "Move Right", Other: "Droite"},
	{ID: "Fire Up", Other: "Tir Haut"},
	{ID: "Fire Down", Other: "Tir Bas"},
	{ID: "Fire Left", Other: "Tir Gauche"},
	{ID: "Fire Right", Other: "Tir Droite"},
	{ID: "Coin", Other: "Pièce"},
	{ID: "Fire Center", Other: "Tir Centre"},
	{ID: "Trackball Left", Other: "Boule Gauche"},
	{ID: "Trackball Right", Other: "Boule Droite"},
	{ID: "Trackball Up", Other: "Boule Haut"},
	{ID: "Trackball Down", Other: "Boule Bas"},
}
