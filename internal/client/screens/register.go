package screens

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/validation"
)

type Register struct {
	session services.SessionStore
}

func NewRegister(session services.SessionStore) *Register {
	return &Register{session: session}
}

// Submit validates form and creates the account. Success leads to the login
// screen; the user is not logged in.
func (r *Register) Submit(ctx context.Context, form models.RegisterForm) FormResult {
	if fe := validation.ValidateRegister(form); len(fe) > 0 {
		return FormResult{Fields: fe}
	}

	route, err := r.session.Register(ctx, form.Email, form.Password)
	if err != nil {
		return FormResult{Banner: bannerFor(err, MsgRegistrationFailed)}
	}
	return FormResult{Route: route}
}
