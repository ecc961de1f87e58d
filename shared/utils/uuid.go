package utils

import "github.com/google/uuid"

// canonicalUUIDLen es la longitud de la forma 8-4-4-4-12.
const canonicalUUIDLen = 36

// IsValidUUIDv4 comprueba la forma exacta de un UUID v4: grupos 8-4-4-4-12 en
// hexadecimal (sin distinguir mayúsculas), nibble de versión 4 y variante 8|9|a|b.
// uuid.Parse acepta también las formas con llaves, urn: y sin guiones, por eso
// se exige la longitud canónica antes.
func IsValidUUIDv4(s string) bool {
	if len(s) != canonicalUUIDLen {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}

// ParseUUIDv4 valida la forma y devuelve el UUID parseado.
func ParseUUIDv4(s string) (uuid.UUID, bool) {
	if !IsValidUUIDv4(s) {
		return uuid.Nil, false
	}
	return uuid.MustParse(s), true
}
