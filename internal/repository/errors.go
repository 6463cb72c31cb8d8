package repository

import "errors"

// Erros sentinela dos repositórios. Serviços e middleware mapeiam
// para a taxonomia de apperror.
var (
	ErrUserNotFound     = errors.New("usuário não encontrado")
	ErrJobNotFound      = errors.New("job não encontrado")
	ErrProposalNotFound = errors.New("proposta não encontrada")
	ErrPaymentNotFound  = errors.New("pagamento não encontrado")
	ErrIntentNotFound   = errors.New("intent de pagamento não encontrado")
	ErrChatNotFound     = errors.New("chat não encontrado")
	ErrDisputeNotFound  = errors.New("disputa não encontrada")
	ErrConfigNotFound   = errors.New("configuração da plataforma não encontrada")
	ErrMediaNotFound    = errors.New("arquivo não encontrado")

	ErrEmailExists    = errors.New("email já cadastrado")
	ErrPaymentExists  = errors.New("já existe pagamento para este job")
	ErrProposalExists = errors.New("já existe proposta ativa para este job")
	ErrRatingExists   = errors.New("avaliação já registrada para este job")
	ErrDisputeExists  = errors.New("já existe disputa aberta para este job")

	// O job existe mas pertence a outro cliente.
	ErrJobOwnership = errors.New("job pertence a outro cliente")

	// Atualizações condicionais que afetaram 0 linhas: o estado mudou
	// entre a leitura e a escrita.
	ErrJobStatusConflict      = errors.New("status do job mudou, operação abortada")
	ErrProposalStatusConflict = errors.New("status da proposta mudou, operação abortada")
	ErrPaymentNotHeld         = errors.New("pagamento não está em custódia")
	ErrDisputeClosed          = errors.New("disputa já foi encerrada")
)

// uniqueViolation é o código do PostgreSQL para violação de unique.
const uniqueViolation = "23505"
