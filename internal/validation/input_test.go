package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("maria@example.com"))
	assert.NoError(t, ValidateEmail("joao.silva+tag@sub.dominio.com.br"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("sem-arroba"))
	assert.Error(t, ValidateEmail("dois@@arrobas.com"))
	assert.Error(t, ValidateEmail("maria@semponto"))
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("título", "abc", 3, 200))
	assert.Error(t, ValidateLength("título", "ab", 3, 200))
	assert.Error(t, ValidateLength("título", strings.Repeat("a", 201), 3, 200))
}

func TestValidateNota(t *testing.T) {
	assert.NoError(t, ValidateNota(1))
	assert.NoError(t, ValidateNota(5))
	assert.Error(t, ValidateNota(0))
	assert.Error(t, ValidateNota(6))
}

func TestValidateEstado(t *testing.T) {
	assert.NoError(t, ValidateEstado("SP"))
	assert.NoError(t, ValidateEstado(""))
	assert.Error(t, ValidateEstado("SPO"))
	assert.Error(t, ValidateEstado("S1"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("senha123"))
	assert.Error(t, ValidatePassword("curta1"))
	assert.Error(t, ValidatePassword("somenteletras"))
	assert.Error(t, ValidatePassword("12345678"))
}

func TestMaskContacts_Telefone(t *testing.T) {
	masked, flagged := MaskContacts("me liga no 11987654321")
	assert.True(t, flagged)
	assert.NotContains(t, masked, "11987654321")
	assert.Contains(t, masked, "[removido pela moderação]")
}

func TestMaskContacts_Email(t *testing.T) {
	masked, flagged := MaskContacts("me chama em maria@gmail.com por favor")
	assert.True(t, flagged)
	assert.NotContains(t, masked, "maria@gmail.com")
}

func TestMaskContacts_URL(t *testing.T) {
	masked, flagged := MaskContacts("olha meu site https://meuportfolio.com e www.outro.com")
	assert.True(t, flagged)
	assert.NotContains(t, masked, "meuportfolio.com")
	assert.NotContains(t, masked, "www.outro.com")
}

func TestMaskContacts_ConteudoLimpo(t *testing.T) {
	original := "combinado, te espero no local às 14h"
	masked, flagged := MaskContacts(original)
	assert.False(t, flagged)
	assert.Equal(t, original, masked)
}
