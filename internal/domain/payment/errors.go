package payment

import "academia/internal/pkg/apperr"

var (
	ErrNotFound             = apperr.NotFound("Pagamento não encontrado")
	ErrAlreadyConfirmed     = apperr.InvalidState("payment already confirmed")
	ErrCancelPaid           = apperr.InvalidState("cannot cancel a confirmed payment")
	ErrRefundNotPaid        = apperr.InvalidState("only paid payments can be refunded")
	ErrInvalidTransition    = apperr.InvalidState("invalid payment status transition")
	ErrImmutable            = apperr.InvalidState("paid payments cannot be modified")
	ErrInvalidAmount        = apperr.Validation("Valor do pagamento inválido")
	ErrInvalidMethod        = apperr.Validation("Forma de pagamento inválida")
	ErrNegativeFinal        = apperr.Validation("Desconto maior que o valor do pagamento")
	ErrRefundTooLarge       = apperr.Validation("Valor do estorno excede o saldo pago")
	ErrSubscriptionMismatch = apperr.Validation("Assinatura não pertence ao aluno")
	ErrActivationFailed     = apperr.InvalidState("linked subscription cannot be activated")
)
