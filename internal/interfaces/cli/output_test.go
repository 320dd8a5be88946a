package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwatch(t *testing.T) {
	assert.Equal(t, "#0f172a", swatch("#0f172a", true))
	assert.Equal(t, "not-a-color", swatch("not-a-color", false))

	out := swatch("#0f172a", false)
	assert.Contains(t, out, "\x1b[48;2;15;23;42m")
	assert.Contains(t, out, " #0f172a")
}

//Personal.AI order the ending
