package screens

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/validation"
)

type Login struct {
	session services.SessionStore
}

func NewLogin(session services.SessionStore) *Login {
	return &Login{session: session}
}

// Submit validates form and, when it passes, logs in. Invalid input never
// reaches the network.
func (l *Login) Submit(ctx context.Context, form models.LoginForm) FormResult {
	if fe := validation.ValidateLogin(form); len(fe) > 0 {
		return FormResult{Fields: fe}
	}

	route, err := l.session.Login(ctx, form.Email, form.Password)
	if err != nil {
		return FormResult{Banner: bannerFor(err, MsgLoginFailed)}
	}
	return FormResult{Route: route}
}
