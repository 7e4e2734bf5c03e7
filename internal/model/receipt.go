package model

import (
	"sort"
	"time"
)

// ReceiptID uniquely identifies a payment receipt
type ReceiptID string

// Receipt is evidence of a payment, uploaded as a file with metadata.
// It is created by a team admin or umpire and verified by a club admin;
// this client never deletes one.
type Receipt struct {
	ID             ReceiptID `json:"id"`
	PlayerID       UserID    `json:"player"`
	PlayerName     string    `json:"player_name"`
	UploadedByID   UserID    `json:"uploaded_by"`
	UploadedByName string    `json:"uploaded_by_name"`
	FileURL        string    `json:"file"`
	Note           string    `json:"note"`
	Verified       bool      `json:"is_verified"`
	UploadedAt     time.Time `json:"uploaded_at"`
	TeamName       string    `json:"team_name"`
	Group          string    `json:"group"`
	QRCodeURL      string    `json:"qr_code_url,omitempty"`
}

// Unassigned labels the bucket for receipts whose group or team is absent
const Unassigned = "Unassigned"

// TeamReceipts holds one team's receipts within a group
type TeamReceipts struct {
	Team     string
	Receipts []Receipt
}

// GroupReceipts holds one group's receipts, bucketed per team
type GroupReceipts struct {
	Group string
	Teams []TeamReceipts
}

// GroupByTeam buckets receipts by group identifier and then team name, both
// ascending by ordinary string comparison. Receipts with an absent group or
// team land in an explicit Unassigned bucket rather than being dropped.
func GroupByTeam(receipts []Receipt) []GroupReceipts {
	sorted := make([]Receipt, len(receipts))
	copy(sorted, receipts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].TeamName < sorted[j].TeamName
	})

	var out []GroupReceipts
	for _, r := range sorted {
		groupLabel := r.Group
		if groupLabel == "" {
			groupLabel = Unassigned
		}
		teamLabel := r.TeamName
		if teamLabel == "" {
			teamLabel = Unassigned
		}

		if len(out) == 0 || out[len(out)-1].Group != groupLabel {
			out = append(out, GroupReceipts{Group: groupLabel})
		}
		g := &out[len(out)-1]

		if len(g.Teams) == 0 || g.Teams[len(g.Teams)-1].Team != teamLabel {
			g.Teams = append(g.Teams, TeamReceipts{Team: teamLabel})
		}
		t := &g.Teams[len(g.Teams)-1]
		t.Receipts = append(t.Receipts, r)
	}
	return out
}
