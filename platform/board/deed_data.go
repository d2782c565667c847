package board

// Board data. Positions, rents, costs and mortgage values of the 22 deeds
// in their 8 color groups.

var allDeeds = []*Deed{
	{
		Name: "Brown 1", Color: Brown, Square: 1,
		Rent: DeedRent{Base: 2, Set: 4, House1: 10, House2: 30, House3: 90, House4: 160, Hotel: 250},
		Cost: DeedCost{Deed: 60, House: 50, Hotel: 50}, MortgageValue: 30,
	},
	{
		Name: "Brown 2", Color: Brown, Square: 3,
		Rent: DeedRent{Base: 4, Set: 8, House1: 20, House2: 60, House3: 180, House4: 320, Hotel: 450},
		Cost: DeedCost{Deed: 60, House: 50, Hotel: 50}, MortgageValue: 30,
	},
	{
		Name: "Light Blue 1", Color: LightBlue, Square: 6,
		Rent: DeedRent{Base: 6, Set: 12, House1: 30, House2: 90, House3: 270, House4: 400, Hotel: 550},
		Cost: DeedCost{Deed: 100, House: 50, Hotel: 50}, MortgageValue: 50,
	},
	{
		Name: "Light Blue 2", Color: LightBlue, Square: 8,
		Rent: DeedRent{Base: 6, Set: 12, House1: 30, House2: 90, House3: 270, House4: 400, Hotel: 550},
		Cost: DeedCost{Deed: 100, House: 50, Hotel: 50}, MortgageValue: 50,
	},
	{
		Name: "Light Blue 3", Color: LightBlue, Square: 9,
		Rent: DeedRent{Base: 8, Set: 16, House1: 40, House2: 100, House3: 300, House4: 450, Hotel: 600},
		Cost: DeedCost{Deed: 120, House: 50, Hotel: 50}, MortgageValue: 60,
	},
	{
		Name: "Pink 1", Color: Pink, Square: 11,
		Rent: DeedRent{Base: 10, Set: 20, House1: 50, House2: 150, House3: 450, House4: 625, Hotel: 750},
		Cost: DeedCost{Deed: 140, House: 100, Hotel: 100}, MortgageValue: 70,
	},
	{
		Name: "Pink 2", Color: Pink, Square: 13,
		Rent: DeedRent{Base: 12, Set: 24, House1: 60, House2: 180, House3: 500, House4: 700, Hotel: 900},
		Cost: DeedCost{Deed: 140, House: 100, Hotel: 100}, MortgageValue: 70,
	},
	{
		Name: "Pink 3", Color: Pink, Square: 14,
		Rent: DeedRent{Base: 10, Set: 20, House1: 50, House2: 150, House3: 450, House4: 625, Hotel: 750},
		Cost: DeedCost{Deed: 160, House: 100, Hotel: 100}, MortgageValue: 80,
	},
	{
		Name: "Orange 1", Color: Orange, Square: 16,
		Rent: DeedRent{Base: 14, Set: 28, House1: 70, House2: 200, House3: 550, House4: 750, Hotel: 950},
		Cost: DeedCost{Deed: 180, House: 100, Hotel: 100}, MortgageValue: 90,
	},
	{
		Name: "Orange 2", Color: Orange, Square: 18,
		Rent: DeedRent{Base: 14, Set: 28, House1: 70, House2: 200, House3: 550, House4: 750, Hotel: 950},
		Cost: DeedCost{Deed: 180, House: 100, Hotel: 100}, MortgageValue: 90,
	},
	{
		Name: "Orange 3", Color: Orange, Square: 19,
		Rent: DeedRent{Base: 16, Set: 32, House1: 80, House2: 220, House3: 600, House4: 800, Hotel: 1000},
		Cost: DeedCost{Deed: 200, House: 100, Hotel: 100}, MortgageValue: 100,
	},
	{
		Name: "Red 1", Color: Red, Square: 21,
		Rent: DeedRent{Base: 18, Set: 36, House1: 90, House2: 250, House3: 700, House4: 875, Hotel: 1050},
		Cost: DeedCost{Deed: 220, House: 150, Hotel: 150}, MortgageValue: 110,
	},
	{
		Name: "Red 2", Color: Red, Square: 23,
		Rent: DeedRent{Base: 20, Set: 40, House1: 100, House2: 300, House3: 750, House4: 925, Hotel: 1100},
		Cost: DeedCost{Deed: 220, House: 150, Hotel: 150}, MortgageValue: 110,
	},
	{
		Name: "Red 3", Color: Red, Square: 24,
		Rent: DeedRent{Base: 18, Set: 36, House1: 90, House2: 250, House3: 700, House4: 875, Hotel: 1050},
		Cost: DeedCost{Deed: 240, House: 150, Hotel: 150}, MortgageValue: 120,
	},
	{
		Name: "Yellow 1", Color: Yellow, Square: 26,
		Rent: DeedRent{Base: 22, Set: 44, House1: 110, House2: 330, House3: 800, House4: 975, Hotel: 1150},
		Cost: DeedCost{Deed: 260, House: 150, Hotel: 150}, MortgageValue: 130,
	},
	{
		Name: "Yellow 2", Color: Yellow, Square: 27,
		Rent: DeedRent{Base: 22, Set: 44, House1: 110, House2: 330, House3: 800, House4: 975, Hotel: 1150},
		Cost: DeedCost{Deed: 260, House: 150, Hotel: 150}, MortgageValue: 130,
	},
	{
		Name: "Yellow 3", Color: Yellow, Square: 29,
		Rent: DeedRent{Base: 24, Set: 48, House1: 120, House2: 360, House3: 850, House4: 1025, Hotel: 1200},
		Cost: DeedCost{Deed: 280, House: 150, Hotel: 150}, MortgageValue: 140,
	},
	{
		Name: "Green 1", Color: Green, Square: 31,
		Rent: DeedRent{Base: 26, Set: 52, House1: 130, House2: 390, House3: 900, House4: 1100, Hotel: 1275},
		Cost: DeedCost{Deed: 300, House: 200, Hotel: 200}, MortgageValue: 150,
	},
	{
		Name: "Green 2", Color: Green, Square: 32,
		Rent: DeedRent{Base: 28, Set: 56, House1: 150, House2: 450, House3: 1000, House4: 1200, Hotel: 1400},
		Cost: DeedCost{Deed: 300, House: 200, Hotel: 200}, MortgageValue: 150,
	},
	{
		Name: "Green 3", Color: Green, Square: 34,
		Rent: DeedRent{Base: 26, Set: 52, House1: 130, House2: 390, House3: 900, House4: 1100, Hotel: 1275},
		Cost: DeedCost{Deed: 320, House: 200, Hotel: 200}, MortgageValue: 160,
	},
	{
		Name: "Blue 1", Color: Blue, Square: 37,
		Rent: DeedRent{Base: 50, Set: 100, House1: 200, House2: 600, House3: 1400, House4: 1700, Hotel: 2000},
		Cost: DeedCost{Deed: 350, House: 200, Hotel: 200}, MortgageValue: 175,
	},
	{
		Name: "Blue 2", Color: Blue, Square: 39,
		Rent: DeedRent{Base: 35, Set: 70, House1: 175, House2: 500, House3: 1100, House4: 1300, Hotel: 1500},
		Cost: DeedCost{Deed: 400, House: 200, Hotel: 200}, MortgageValue: 200,
	},
}

// colorSets maps each color group to the deed names in it, in board order.
var colorSets = func() map[Color][]string {
	sets := make(map[Color][]string)
	for _, d := range allDeeds {
		sets[d.Color] = append(sets[d.Color], d.Name)
	}
	return sets
}()

func deeds() []*Deed { return allDeeds }
