package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
)

func TestCalcularComissao_Padrao(t *testing.T) {
	split, err := CalcularComissao(1000.0, 0.20)
	assert.NoError(t, err)
	assert.Equal(t, 200.0, split.ComissaoPlataforma)
	assert.Equal(t, 800.0, split.ValorVideomaker)
}

func TestCalcularComissao_SomaSempreBate(t *testing.T) {
	// Valores que forçam arredondamento da comissão
	casos := []struct {
		valor float64
		taxa  float64
	}{
		{100.10, 0.20},
		{333.33, 0.15},
		{0.01, 0.20},
		{999.99, 0.07},
		{1234.56, 0.125},
	}

	for _, c := range casos {
		split, err := CalcularComissao(c.valor, c.taxa)
		assert.NoError(t, err)
		assert.InDelta(t, c.valor, split.ComissaoPlataforma+split.ValorVideomaker, 1e-9,
			"comissão + valor do videomaker deve fechar com o valor total")
	}
}

func TestCalcularComissao_ValorZero(t *testing.T) {
	split, err := CalcularComissao(0, 0.20)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, split.ComissaoPlataforma)
	assert.Equal(t, 0.0, split.ValorVideomaker)
}

func TestCalcularComissao_ValorNegativo(t *testing.T) {
	_, err := CalcularComissao(-10, 0.20)
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCalcularComissao_TaxaForaDoIntervalo(t *testing.T) {
	_, err := CalcularComissao(100, -0.1)
	assert.Error(t, err)

	_, err = CalcularComissao(100, 1.01)
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestValorMinimo_ComExtras(t *testing.T) {
	// 3h * 120 + drone (100) + edição avançada (150) = 610
	valor, err := ValorMinimo(3.0, 120.0, []string{"drone", "edicao_avancada"})
	assert.NoError(t, err)
	assert.Equal(t, 610.0, valor)
}

func TestValorMinimo_SemExtras(t *testing.T) {
	valor, err := ValorMinimo(2.5, 120.0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 300.0, valor)
}

func TestValorMinimo_ExtraDesconhecido(t *testing.T) {
	_, err := ValorMinimo(3.0, 120.0, []string{"drone", "fogos_de_artificio"})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "fogos_de_artificio")
}

func TestValorMinimo_DuracaoInvalida(t *testing.T) {
	_, err := ValorMinimo(0, 120.0, nil)
	assert.Error(t, err)

	_, err = ValorMinimo(-1, 120.0, nil)
	assert.Error(t, err)
}

func TestCentavos(t *testing.T) {
	assert.Equal(t, int64(61000), Centavos(610.0))
	assert.Equal(t, int64(10010), Centavos(100.10))
	assert.Equal(t, int64(1), Centavos(0.01))
}
