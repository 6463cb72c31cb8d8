package models

// Papéis de usuário
const (
	RoleCliente    = "cliente"
	RoleVideomaker = "videomaker"
	RoleAdmin      = "admin"
)

// Valores padrão da plataforma; podem ser sobrescritos em platform_config.
const (
	DefaultCommissionRate = 0.20
	DefaultHourlyRate     = 120.0
)

// Categorias de gravação aceitas pela plataforma.
var Categories = []string{
	"casamento",
	"evento_corporativo",
	"aniversario",
	"formatura",
	"publicidade",
	"imobiliario",
	"esportivo",
	"musical",
	"documentario",
	"outro",
}

// ExtraSurcharges mapeia cada extra para o adicional sobre o valor mínimo.
var ExtraSurcharges = map[string]float64{
	"edicao_basica":           50.0,
	"edicao_avancada":         150.0,
	"drone":                   100.0,
	"equipamento_especial":    80.0,
	"iluminacao_profissional": 120.0,
	"audio_profissional":      90.0,
}

// IsValidCategory verifica se a categoria é conhecida.
func IsValidCategory(categoria string) bool {
	for _, c := range Categories {
		if c == categoria {
			return true
		}
	}
	return false
}

// IsValidRole verifica se o papel é conhecido.
func IsValidRole(role string) bool {
	return role == RoleCliente || role == RoleVideomaker || role == RoleAdmin
}
