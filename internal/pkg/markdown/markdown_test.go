package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("**Logique** propositionnelle")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Logique</strong>")

	out, err = r.Render("   ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out = r.MustRender("<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
}
