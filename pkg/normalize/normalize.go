package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchName normaliza un nombre para búsqueda: quita acentos (NFD + remover
// marcas combinantes), colapsa espacios y pasa a minúsculas. Se aplica al
// crear/actualizar productos, clientes y proveedores.
func SearchName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// SKU normaliza un SKU: mayúsculas sin espacios alrededor.
func SKU(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
