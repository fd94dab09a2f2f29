package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/pkg/normalize"
)

func TestSearchName(t *testing.T) {
	cases := map[string]string{
		"Vidrio Templado 8mm":  "vidrio templado 8mm",
		"  Perfil   Aluminio ": "perfil aluminio",
		"Instalación Ventanas": "instalacion ventanas",
		"VIDRIO BRONCE":        "vidrio bronce",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.SearchName(in), "input %q", in)
	}
}

func TestSKU(t *testing.T) {
	assert.Equal(t, "VID-TEMP-8MM", normalize.SKU("  vid-temp-8mm "))
	assert.Equal(t, "ABC123", normalize.SKU("abc123"))
}
