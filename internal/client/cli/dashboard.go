package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/dashboard"
)

// Dashboard prints the dashboard of the signed-in user.
func (a *App) Dashboard(ctx context.Context) error {
	s, ok := a.requireSession(ctx)
	if !ok {
		return nil
	}
	renderDashboard(a.out, dashboard.Build(s.Profile, a.now()))
	return nil
}

// Whoami prints the signed-in profile.
func (a *App) Whoami(ctx context.Context) error {
	s, ok := a.requireSession(ctx)
	if !ok {
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", s.Profile.DisplayName())
	fmt.Fprintf(tw, "Email:\t%s\n", s.Profile.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", s.Profile.Role.Label())
	if !s.ExpiresAt.IsZero() {
		fmt.Fprintf(tw, "Session expires:\t%s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	}
	return tw.Flush()
}

func renderDashboard(w io.Writer, v dashboard.View) {
	fmt.Fprintf(w, "[%s] Welcome back, %s\n", v.Initial, v.Greeting)
	fmt.Fprintf(w, "%s · %s\n\n", v.Date, v.RoleLabel)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range v.Stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Title, s.Value, s.Change)
	}
	_ = tw.Flush()

	if v.Admin != nil {
		fmt.Fprintf(w, "\n%s\n", v.Admin.Title)
		for _, t := range v.Admin.Tools {
			fmt.Fprintf(w, "  - %s\n", t)
		}
	}
	if v.Manager != nil {
		fmt.Fprintf(w, "\n%s\n", v.Manager.Title)
		fmt.Fprintf(w, "  Assets under management: %s\n", v.Manager.AUM)
		fmt.Fprintf(w, "  %d portfolio managers · %d clients\n", v.Manager.Managers, v.Manager.Clients)
	}

	fmt.Fprintln(w, "\nTop stocks")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE")
	for _, s := range v.Stocks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Symbol, s.Name, s.Price, s.Change)
	}
	_ = tw.Flush()

	fmt.Fprintln(w, "\nRecent activity")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range v.Activity {
		fmt.Fprintf(tw, "%s\t%d %s\t@ %s\t%s\t%s\n", strings.ToUpper(t.Action), t.Shares, t.Symbol, t.Price, t.When, t.Status)
	}
	_ = tw.Flush()
}
