package badge

import "github.com/greenquest-lab/backend/pkg/enum"

type Rarity string

var (
	Legendary = enum.New(Rarity("legendary"))
	Epic      = enum.New(Rarity("epic"))
	Rare      = enum.New(Rarity("rare"))
	Common    = enum.New(Rarity("common"))
)

// Rarest first. Names are matched exactly.
var rarityTable = []struct {
	name   string
	rarity Rarity
}{
	{"Legend of the Land", Legendary},
	{"Earth Champion", Legendary},
	{"Climate Fighter", Epic},
	{"Future Farmer", Epic},
	{"Sustainability Star", Epic},
	{"Green Guardian", Rare},
	{"Water Wizard", Rare},
	{"Compost King", Rare},
	{"Bio Defender", Rare},
}

// RarityOf returns Common for names outside the table.
func RarityOf(name string) Rarity {
	for _, r := range rarityTable {
		if r.name == name {
			return r.rarity
		}
	}

	return Common
}
