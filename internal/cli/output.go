package cli

import (
	"encoding/json"
	"fmt"
	"os"

	apiclient "github.com/masego-dev/clubctl/internal/client"
	"github.com/masego-dev/clubctl/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *apiclient.LoginResult:
		o.printLogin(v)
	case []model.User:
		o.printUsers(v)
	case []model.RosterEntry:
		o.printRoster(v)
	case []model.GroupReceipts:
		o.printGroupedReceipts(v)
	case model.Receipt:
		o.printReceipt(v, "")
	case *model.ScanResult:
		o.printScanResult(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLogin(r *apiclient.LoginResult) {
	fmt.Printf("Logged in as %s %s (%s)\n", r.User.FirstName, r.User.Surname, r.User.Email)
	fmt.Printf("Role: %s\n", r.User.Role)
	fmt.Printf("Dashboard: %s\n", r.User.Role.Dashboard())
}

func (o *Output) printUsers(users []model.User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		team := ""
		if u.TeamName != "" {
			team = " - " + u.TeamName
		}
		fmt.Printf("  - %s %s <%s> [%s]%s\n", u.FirstName, u.Surname, u.Email, u.Role, team)
	}
}

func (o *Output) printRoster(roster []model.RosterEntry) {
	fmt.Printf("Team players (%d):\n", len(roster))
	for _, p := range roster {
		adminStr := ""
		if p.IsTeamAdmin {
			adminStr = " [team admin]"
		}
		fmt.Printf("  - %s %s (%s)%s\n", p.FirstName, p.Surname, p.ID, adminStr)
		fmt.Printf("    ID number: %s, Contact: %s, DOB: %s\n",
			p.IDNumber, p.Contact, p.DateOfBirth.Format("2006-01-02"))
		if p.TeamName != "" {
			fmt.Printf("    Team: %s, Group: %s\n", p.TeamName, p.Group)
		}
	}
}

func (o *Output) printGroupedReceipts(groups []model.GroupReceipts) {
	if len(groups) == 0 {
		fmt.Println("No receipts")
		return
	}
	for _, g := range groups {
		fmt.Printf("Group %s:\n", g.Group)
		for _, t := range g.Teams {
			fmt.Printf("  %s:\n", t.Team)
			for _, r := range t.Receipts {
				o.printReceipt(r, "    ")
			}
		}
	}
}

func (o *Output) printReceipt(r model.Receipt, indent string) {
	status := "unverified"
	if r.Verified {
		status = "verified"
	}
	fmt.Printf("%s- %s: %s (uploaded by %s, %s) [%s]\n",
		indent, r.ID, r.PlayerName, r.UploadedByName,
		r.UploadedAt.Format("2006-01-02"), status)
	if r.Note != "" {
		fmt.Printf("%s  Note: %s\n", indent, r.Note)
	}
}

func (o *Output) printScanResult(s *model.ScanResult) {
	fmt.Printf("Player: %s %s\n", s.FirstName, s.Surname)
	if s.TeamName != "" {
		fmt.Printf("Team: %s\n", s.TeamName)
	}
	fmt.Printf("Payment status: %s\n", s.PaymentStatus)
}
