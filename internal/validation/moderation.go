package validation

import "regexp"

// Padrões de contato bloqueados no chat antes do pagamento em custódia.
var (
	phonePattern = regexp.MustCompile(`\d{8,11}`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	urlPattern   = regexp.MustCompile(`(?i)(http[s]?://\S+|www\.\S+)`)
)

const maskedPlaceholder = "[removido pela moderação]"

// MaskContacts substitui telefones, emails e URLs pelo marcador de moderação.
// Devolve o conteúdo mascarado e se algo foi removido.
func MaskContacts(content string) (string, bool) {
	masked := content
	flagged := false

	if emailPattern.MatchString(masked) {
		masked = emailPattern.ReplaceAllString(masked, maskedPlaceholder)
		flagged = true
	}
	if urlPattern.MatchString(masked) {
		masked = urlPattern.ReplaceAllString(masked, maskedPlaceholder)
		flagged = true
	}
	if phonePattern.MatchString(masked) {
		masked = phonePattern.ReplaceAllString(masked, maskedPlaceholder)
		flagged = true
	}

	return masked, flagged
}

// ContainsContact verifica se o conteúdo tem algum contato detectável.
func ContainsContact(content string) bool {
	return phonePattern.MatchString(content) ||
		emailPattern.MatchString(content) ||
		urlPattern.MatchString(content)
}
