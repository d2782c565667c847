package board

import (
	"fmt"
	"math/rand"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

// Chest is a community chest square. The three chest squares share one
// shuffled draw deck persisted on the game row; the deck is reshuffled when
// it runs out.
type Chest struct {
	Square int
}

func (c *Chest) Position() int      { return c.Square }
func (c *Chest) SearchTerm() string { return "Community chest" }

func (c *Chest) Display(_ *Context) (*models.Display, error) {
	d := &models.Display{}
	d.AddField("Community chest", "A random surprise")
	return d, nil
}

func (c *Chest) Land(ctx *Context) ([]models.EmbedField, error) {
	game := ctx.Game

	if len(game.ChestDeck) == 0 {
		game.ChestDeck = shuffledDeck(len(chestCards))
	}

	last := len(game.ChestDeck) - 1
	idx := game.ChestDeck[last]
	game.ChestDeck = game.ChestDeck[:last]

	if idx < 0 || idx >= len(chestCards) {
		return nil, fmt.Errorf("bad chest card index %d", idx)
	}
	text := chestCards[idx](ctx.Player)

	if _, err := ctx.DB.ModelContext(ctx.Ctx, game).WherePK().Update(); err != nil {
		return nil, fmt.Errorf("saving chest deck: %w", err)
	}

	return []models.EmbedField{{Name: "You drew", Value: text}}, nil
}

func shuffledDeck(n int) []int {
	deck := make([]int, n)
	for i := range deck {
		deck[i] = i
	}
	rand.Shuffle(n, func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// chestCards mutate the drawn-for player in memory; the roll transaction
// persists the row. Indices are what the persisted deck stores, so order
// here is part of the stored format.
var chestCards = []func(p *models.Player) string{
	func(p *models.Player) string {
		p.CurrentSquare = 0
		p.Balance += 200

		return "Advance to GO! Collect $200"
	},
	func(p *models.Player) string {
		p.Balance += 200

		return "Bank error in your favor -- Collect $200"
	},
	func(p *models.Player) string {
		p.Balance -= 50

		return "Doctor's fee -- Pay $50"
	},
	func(p *models.Player) string {
		p.Balance += 50

		return "From sale of stock you get $50"
	},
	func(p *models.Player) string {
		SendToJail(p)

		return "Go to Jail!"
	},
}

func chestSquares() []*Chest {
	return []*Chest{{Square: 2}, {Square: 17}, {Square: 33}}
}
