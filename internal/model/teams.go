package model

// Teams is the club's team catalog, as offered on the registration forms
var Teams = []string{
	"Thunder Cats",
	"Black Mambas 1",
	"Forvis Mazars A",
	"Motozone",
	"Lobatse Cricket Club",
	"Pioneers",
	"United Gymkhana",
	"All Stars",
	"SH Tyre City",
	"Gujarat Strikers B",
	"Phoenix",
	"Ceylon Cricket Club",
	"DJ Devils",
	"BD Cricket Club",
	"SKY XI",
	"Cubs XI",
	"Nawabz Boys",
	"Auto World",
	"FD Titans",
	"Pulse Cricket Stallion",
	"Elite Sports",
	"Excel Strikers",
	"PWC",
	"Black Mambas 2",
	"Moremi Kings (Chennai)",
	"Forvis Mazars Juniors",
	"Sefalana",
	"Friends",
	"A-One",
	"Cheetas",
}

// Groups are the league group identifiers
var Groups = []string{"A", "B", "C", "D"}

// ValidTeam reports whether name is in the team catalog
func ValidTeam(name string) bool {
	for _, t := range Teams {
		if t == name {
			return true
		}
	}
	return false
}

// ValidGroup reports whether g is a known group identifier
func ValidGroup(g string) bool {
	for _, known := range Groups {
		if known == g {
			return true
		}
	}
	return false
}
