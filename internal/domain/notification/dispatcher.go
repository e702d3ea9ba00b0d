package notification

import (
	"context"
	"fmt"
	"time"

	"academia/internal/pkg/apperr"
	"academia/internal/pkg/clock"
)

// Dispatcher delivers a templated message to a student. Delivery is
// best-effort by contract: callers log failures and move on, they never
// propagate them to the triggering operation.
type Dispatcher interface {
	Send(ctx context.Context, studentID int64, template string, data map[string]any) error
}

// InAppDispatcher renders templates into portal notifications.
type InAppDispatcher struct {
	repo Repository
	clk  clock.Clock
}

func NewInAppDispatcher(repo Repository, clk clock.Clock) *InAppDispatcher {
	return &InAppDispatcher{repo: repo, clk: clk}
}

func (d *InAppDispatcher) Send(ctx context.Context, studentID int64, template string, data map[string]any) error {
	title, message := render(Template(template), data)
	n := &Notification{
		StudentID: studentID,
		Template:  Template(template),
		Title:     title,
		Message:   message,
		CreatedAt: d.clk.Now(),
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return apperr.External("notification delivery failed", err)
	}
	return nil
}

func render(t Template, data map[string]any) (title, message string) {
	switch t {
	case TemplateExpiryReminder:
		title = "Seu plano está expirando"
		message = fmt.Sprintf("Seu plano expira em %v. Renove para continuar treinando.", data["days_remaining"])
		if end, ok := data["end_date"].(time.Time); ok {
			message = fmt.Sprintf("Seu plano expira em %s. Renove para continuar treinando.", end.Format("02/01/2006"))
		}
	case TemplatePaymentReceipt:
		title = "Pagamento confirmado"
		message = fmt.Sprintf("Recebemos seu pagamento de R$ %.2f. Bom treino!", data["amount"])
	case TemplateRenewalCreated:
		title = "Renovação gerada"
		message = "Sua assinatura foi renovada. Confirme o pagamento para ativar o novo período."
	default:
		title = "Aviso"
		message = fmt.Sprintf("%v", data)
	}
	return title, message
}
