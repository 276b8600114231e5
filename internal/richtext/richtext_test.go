package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRich(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{name: "img tag", text: `Deals damage <img src="icon.png"/> nearby`, want: true},
		{name: "img upper case", text: `<IMG SRC="x">`, want: true},
		{name: "inline attribute span", text: `<span class="inline-attribute">+20 Spirit</span>`, want: true},
		{name: "inline attribute among classes", text: `<span class='bold Inline-Attribute'>x</span>`, want: true},
		{name: "label class is not rich", text: `<span class="inline-attribute-label">Spirit</span>`, want: false},
		{name: "highlight only", text: `<span class="highlight">Slows</span> enemies`, want: false},
		{name: "plain", text: "Grants bonus health.", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRich(tc.text))
		})
	}
}

func TestKeybinds(t *testing.T) {
	text := "Press {g:citadel_binding:'Ability1'} then {g:citadel_binding:'Reload'}"
	assert.Equal(t, []string{"Ability1", "Reload"}, Keybinds(text))
	assert.Empty(t, Keybinds("no bindings"))
}

func TestPlainText(t *testing.T) {
	text := `Press {g:citadel_binding:'Ability1'} to <span class="highlight">dash</span>.<br>Gain <img src="a.png"> <b>20%</b>  speed.`
	assert.Equal(t, "Press [Ability1] to dash.\nGain 20% speed.", PlainText(text))
	assert.Equal(t, "", PlainText("   "))
}
