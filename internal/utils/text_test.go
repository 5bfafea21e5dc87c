package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	cases := map[string]string{
		"José Á.":          "Jose A.",
		"Pérez, Juan":      "Perez, Juan",
		"evaluación":       "evaluacion",
		"comercialización": "comercializacion",
		"ventaRenta":       "ventaRenta",
		"Sí":               "Si",
		"Peña Ñuñoa":       "Pena Nunoa",
		"casa 🏠 bonita":    "casa  bonita",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripAccents(in), in)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "maria lopez", NormalizeName("  María   LÓPEZ "))
	assert.Equal(t, NormalizeName("Inmobiliaria Pérez"), NormalizeName("inmobiliaria perez"))
}
