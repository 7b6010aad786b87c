package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyles_RenderKeepsText(t *testing.T) {
	s := Styles()
	assert.Contains(t, s.Prompt.Render("fab:/$"), "fab:/$")
	assert.Contains(t, s.Muted.Render("hint"), "hint")
	assert.Contains(t, s.Error.Render("boom"), "boom")
}
