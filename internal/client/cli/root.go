package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

func (a *App) getStatus() string {
	st := a.session.State()
	s := string(a.route) + " " + string(st.Status)
	if st.Identity != nil {
		s = st.Identity.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Root renders the home screen and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the authdemo CLI (type 'help' for commands)")
	a.navigate(ctx, models.RouteHome)
	runREPL(ctx, a, a.getStatus, a.reader)
}
