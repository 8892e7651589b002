// Package dashboard builds the signed-in dashboard. Every figure is fixed
// sample data; only the greeting and the role panels depend on the profile.
package dashboard

import (
	"time"

	"github.com/dmitrijs2005/stocksense/internal/client/models"
)

type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

type Stat struct {
	Title  string
	Value  string
	Change string
	Trend  Trend
}

type Stock struct {
	Symbol string
	Name   string
	Price  string
	Change string
	Trend  Trend
}

type Trade struct {
	Action string
	Symbol string
	Shares int
	Price  string
	When   string
	Status string
}

type AdminPanel struct {
	Title string
	Tools []string
}

type ManagerPanel struct {
	Title    string
	AUM      string
	Managers int
	Clients  int
}

// View is everything a surface needs to render the dashboard.
type View struct {
	Greeting  string
	Initial   string
	Email     string
	Role      models.Role
	RoleLabel string
	Date      string

	Stats    []Stat
	Stocks   []Stock
	Activity []Trade

	// Admin is set only for admins, Manager only for managers.
	Admin   *AdminPanel
	Manager *ManagerPanel
}

func (v View) IsAdmin() bool   { return v.Admin != nil }
func (v View) IsManager() bool { return v.Manager != nil }

// Build assembles the dashboard for p at now.
func Build(p models.Profile, now time.Time) View {
	v := View{
		Greeting:  p.DisplayName(),
		Initial:   p.Initial(),
		Email:     p.Email,
		Role:      p.Role,
		RoleLabel: p.Role.Label(),
		Date:      now.Format("Monday, January 2, 2006"),
		Stats:     stats(),
		Stocks:    topStocks(),
		Activity:  recentActivity(),
	}

	switch p.Role {
	case models.RoleAdmin:
		v.Admin = &AdminPanel{
			Title: "System Administration",
			Tools: []string{"User Directory", "Security Logs", "Global Settings"},
		}
	case models.RoleManager:
		v.Manager = &ManagerPanel{
			Title:    "Portfolio Management",
			AUM:      "$42.4M",
			Managers: 12,
			Clients:  642,
		}
	}
	return v
}

func stats() []Stat {
	return []Stat{
		{Title: "Total Net Worth", Value: "$1,234,567.89", Change: "+1.23%", Trend: TrendUp},
		{Title: "Active Positions", Value: "24 assets", Change: "8 sectors", Trend: TrendFlat},
		{Title: "Weekly Volume", Value: "$84.2K", Trend: TrendFlat},
		{Title: "Efficiency Rate", Value: "92.4%", Change: "+4.1%", Trend: TrendUp},
	}
}

func topStocks() []Stock {
	return []Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: "$178.45", Change: "+1.33%", Trend: TrendUp},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Price: "$378.91", Change: "-0.32%", Trend: TrendDown},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: "$142.67", Change: "+2.48%", Trend: TrendUp},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: "$156.23", Change: "+1.22%", Trend: TrendUp},
	}
}

func recentActivity() []Trade {
	return []Trade{
		{Action: "Buy", Symbol: "AAPL", Shares: 50, Price: "$178.45", When: "2 hours ago", Status: "Completed"},
		{Action: "Sell", Symbol: "TSLA", Shares: 25, Price: "$245.67", When: "5 hours ago", Status: "Completed"},
		{Action: "Buy", Symbol: "NVDA", Shares: 30, Price: "$489.12", When: "1 day ago", Status: "Pending"},
	}
}
