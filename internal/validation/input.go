package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limites de validação
const (
	MinNomeLength         = 2
	MaxNomeLength         = 100
	MinTituloLength       = 3
	MaxTituloLength       = 200
	MinDescricaoLength    = 10
	MaxDescricaoLength    = 5000
	MinMensagemLength     = 1
	MaxMensagemLength     = 5000
	MinMotivoLength       = 3
	MaxMotivoLength       = 200
	MaxCidadeLength       = 100
	MaxEstadoLength       = 2
	MinNota               = 1
	MaxNota               = 5
	MinValor              = 0.0
	MaxValor              = 100000000.0 // 100 milhões
)

// ValidateLength verifica o comprimento de uma string.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s deve ter pelo menos %d caracteres", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s deve ter no máximo %d caracteres", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty verifica que a string não está vazia.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s não pode ser vazio", fieldName)
	}
	return nil
}

// ValidateEmail verifica o formato do email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email é obrigatório")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email deve conter o caractere @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("formato de email inválido")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("parte local do email deve ter entre 1 e 64 caracteres")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("domínio do email deve ter entre 1 e 255 caracteres")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("domínio do email deve conter um ponto")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("parte local do email contém caracteres inválidos")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("domínio do email tem formato inválido")
	}

	return nil
}

// ValidateNota verifica a nota de uma avaliação.
func ValidateNota(nota int) error {
	if nota < MinNota || nota > MaxNota {
		return fmt.Errorf("nota deve estar entre %d e %d", MinNota, MaxNota)
	}
	return nil
}

// ValidateValor verifica um valor monetário.
func ValidateValor(fieldName string, valor float64) error {
	if valor < MinValor {
		return fmt.Errorf("%s não pode ser negativo", fieldName)
	}
	if valor > MaxValor {
		return fmt.Errorf("%s não pode exceder %.0f", fieldName, MaxValor)
	}
	return nil
}

// ValidateEstado verifica a sigla de estado (UF).
func ValidateEstado(estado string) error {
	if estado == "" {
		return nil
	}
	if len(estado) != 2 {
		return fmt.Errorf("estado deve ser a sigla de 2 letras")
	}
	ufRegex := regexp.MustCompile(`^[A-Z]{2}$`)
	if !ufRegex.MatchString(strings.ToUpper(estado)) {
		return fmt.Errorf("estado deve conter apenas letras")
	}
	return nil
}
