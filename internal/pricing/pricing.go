package pricing

import (
	"fmt"
	"math"

	"github.com/vmhub/videomakers-backend/internal/models"
	"github.com/vmhub/videomakers-backend/internal/pkg/apperror"
)

// Split é a divisão de um pagamento entre plataforma e videomaker.
// ComissaoPlataforma + ValorVideomaker == ValorTotal, sempre: o valor do
// videomaker é calculado por subtração, nunca por um segundo arredondamento.
type Split struct {
	ValorTotal         float64
	TaxaComissao       float64
	ComissaoPlataforma float64
	ValorVideomaker    float64
}

// CalcularComissao divide valorTotal entre plataforma e videomaker.
// A comissão é round(valorTotal * taxa, 2); o restante vai para o videomaker.
func CalcularComissao(valorTotal, taxa float64) (*Split, error) {
	if valorTotal < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "valor total não pode ser negativo")
	}
	if taxa < 0 || taxa > 1 {
		return nil, apperror.New(apperror.ErrCodeValidation, "taxa de comissão deve estar entre 0 e 1")
	}

	comissao := round2(valorTotal * taxa)
	return &Split{
		ValorTotal:         valorTotal,
		TaxaComissao:       taxa,
		ComissaoPlataforma: comissao,
		ValorVideomaker:    valorTotal - comissao,
	}, nil
}

// ValorMinimo calcula o piso de preço de um job:
// duracao_horas * valor_hora_base + soma dos adicionais de cada extra.
// Extras desconhecidos são rejeitados.
func ValorMinimo(duracaoHoras, valorHoraBase float64, extras []string) (float64, error) {
	if duracaoHoras <= 0 {
		return 0, apperror.New(apperror.ErrCodeValidation, "duração deve ser maior que zero")
	}
	if valorHoraBase <= 0 {
		return 0, apperror.New(apperror.ErrCodeValidation, "valor hora base deve ser maior que zero")
	}

	total := duracaoHoras * valorHoraBase
	for _, extra := range extras {
		adicional, ok := models.ExtraSurcharges[extra]
		if !ok {
			return 0, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("extra desconhecido: %s", extra))
		}
		total += adicional
	}

	return round2(total), nil
}

// Centavos converte um valor em reais para centavos (unidade do processador).
func Centavos(valor float64) int64 {
	return int64(math.Round(valor * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
