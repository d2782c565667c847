package board

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
)

type Color int

const (
	Brown     Color = 0xb35100
	LightBlue Color = 0x0c9999
	Red       Color = 0xb30000
	Orange    Color = 0xff7f15
	Green     Color = 0x008f00
	Yellow    Color = 0xffb115
	Pink      Color = 0xcd117b
	Blue      Color = 0x082a78
)

var colorNames = map[Color]string{
	Brown:     "Brown",
	LightBlue: "Light blue",
	Red:       "Red",
	Orange:    "Orange",
	Green:     "Green",
	Yellow:    "Yellow",
	Pink:      "Pink",
	Blue:      "Blue",
}

type DeedRent struct {
	Base   int
	Set    int
	House1 int
	House2 int
	House3 int
	House4 int
	Hotel  int
}

type DeedCost struct {
	Deed  int
	House int
	Hotel int
}

// Deed is the static description of one deed square. Ownership and
// improvements live in the deed table, keyed by Name.
type Deed struct {
	Name          string
	Color         Color
	Square        int
	Rent          DeedRent
	Cost          DeedCost
	MortgageValue int
}

func (d *Deed) Position() int       { return d.Square }
func (d *Deed) SearchTerm() string  { return d.Name }
func (d *Deed) Key() TradableKey    { return TradableKey(d.Name) }
func (d *Deed) DisplayName() string { return d.Name }
func (d *Deed) ItemTerms() []string { return []string{d.Name} }
func (d *Deed) colorName() string   { return colorNames[d.Color] }
func (d *Deed) setNames() []string  { return colorSets[d.Color] }

// rentTier picks the single applicable rent: hotel, houses 1-4, or base.
func rentTier(r DeedRent, houses int, hotel bool) int {
	if hotel {
		return r.Hotel
	}
	switch houses {
	case 0:
		return r.Base
	case 1:
		return r.House1
	case 2:
		return r.House2
	case 3:
		return r.House3
	default:
		return r.House4
	}
}

// row loads the ownership record, nil when the deed was never bought.
func (d *Deed) row(ctx context.Context, db orm.DB, channelId string, gameId int) (*models.Deed, error) {
	deed := new(models.Deed)
	err := db.ModelContext(ctx, deed).
		Where("channel_id = ? AND game_id = ? AND deed_name = ?", channelId, gameId, d.Name).
		Select()
	if err == pg.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading deed %s: %w", d.Name, err)
	}
	return deed, nil
}

// set loads the ownership records of every deed in this deed's color group,
// keyed by name. Unowned deeds are absent.
func (d *Deed) set(ctx context.Context, db orm.DB, channelId string, gameId int) (map[string]*models.Deed, error) {
	var rows []models.Deed
	err := db.ModelContext(ctx, &rows).
		Where("channel_id = ? AND game_id = ?", channelId, gameId).
		Where("deed_name IN (?)", pg.In(d.setNames())).
		Select()
	if err != nil {
		return nil, fmt.Errorf("loading %s set: %w", d.colorName(), err)
	}

	set := make(map[string]*models.Deed, len(rows))
	for i := range rows {
		set[rows[i].DeedName] = &rows[i]
	}
	return set, nil
}

// ownsFullSet reports whether every deed in the color group is owned by
// userId.
func ownsFullSet(set map[string]*models.Deed, names []string, userId string) bool {
	for _, name := range names {
		row, ok := set[name]
		if !ok || row.UserId != userId {
			return false
		}
	}
	return true
}

// canBuildEvenly enforces even building: a house may only go on a deed that
// is not already ahead of the rest of its set.
func canBuildEvenly(target *models.Deed, set map[string]*models.Deed, names []string) bool {
	for _, name := range names {
		row, ok := set[name]
		if !ok || row.Houses < target.Houses {
			return false
		}
	}
	return true
}

func (d *Deed) Display(ctx *Context) (*models.Display, error) {
	row, err := d.row(ctx.Ctx, ctx.DB, ctx.Game.ChannelId, ctx.Game.GameId)
	if err != nil {
		return nil, err
	}

	owner := "--------"
	houses, hotel, mortgaged := 0, false, false
	if row != nil {
		houses, hotel, mortgaged = row.Houses, row.Hotel, row.Mortgaged
		if member, ok, err := lookupOwner(ctx, row.UserId); err != nil {
			return nil, err
		} else if ok {
			owner = member.Name
		} else if row.UserId != "" {
			owner = "N/A"
		}
	}

	display := &models.Display{Color: int(d.Color)}
	display.AddInline("Deed", d.Name)
	display.AddInline("Owner", owner)
	display.AddInline("Houses", fmt.Sprintf("%d", houses))
	display.AddInline("Hotel", yesNo(hotel))
	display.AddInline("Mortgaged", yesNo(mortgaged))
	display.AddInline("Rent site only", Dollar(d.Rent.Base))
	display.AddInline("Rent with 1 house", Dollar(d.Rent.House1))
	display.AddInline("Rent with 2 houses", Dollar(d.Rent.House2))
	display.AddInline("Rent with 3 houses", Dollar(d.Rent.House3))
	display.AddInline("Rent with 4 houses", Dollar(d.Rent.House4))
	display.AddInline("Rent with hotel", Dollar(d.Rent.Hotel))
	display.AddInline("Price", Dollar(d.Cost.Deed))
	display.AddInline("Mortgage", Dollar(d.MortgageValue))

	display.Callbacks = []models.Affordance{
		{Key: models.CallbackBuy, Args: models.SquareArgs{Square: d.Square}},
		{Key: models.CallbackBuyHouse, Args: models.SquareArgs{Square: d.Square}},
		{Key: models.CallbackBuyHotel, Args: models.SquareArgs{Square: d.Square}},
		{Key: models.CallbackMortgage, Args: models.SquareArgs{Square: d.Square}},
	}

	return display, nil
}

// Land charges rent to the player standing here. No rent for unowned or
// mortgaged deeds, or when the owner lands on their own square. Runs inside
// the roll transaction; the owner row is saved here, the landing player is
// saved by the caller.
func (d *Deed) Land(ctx *Context) ([]models.EmbedField, error) {
	row, err := d.row(ctx.Ctx, ctx.DB, ctx.Player.ChannelId, ctx.Player.GameId)
	if err != nil {
		return nil, err
	}
	if row == nil || row.UserId == "" || row.UserId == ctx.Player.UserId || row.Mortgaged {
		return nil, nil
	}

	rent := rentTier(d.Rent, row.Houses, row.Hotel)

	owner := new(models.Player)
	err = ctx.DB.ModelContext(ctx.Ctx, owner).
		Where("user_id = ? AND channel_id = ? AND game_id = ?", row.UserId, ctx.Player.ChannelId, ctx.Player.GameId).
		Select()
	if err != nil {
		return nil, fmt.Errorf("missing owner of %s: %w", d.Name, err)
	}

	owner.Balance += rent
	ctx.Player.Balance -= rent

	if _, err := ctx.DB.ModelContext(ctx.Ctx, owner).WherePK().Update(); err != nil {
		return nil, fmt.Errorf("crediting rent for %s: %w", d.Name, err)
	}

	name := "unknown"
	if member, ok, err := lookupOwner(ctx, owner.UserId); err != nil {
		return nil, err
	} else if ok {
		name = member.Name
	}

	return []models.EmbedField{
		{Name: "Paid rent to " + name, Value: Dollar(rent)},
	}, nil
}

// Give transfers ownership to the receiving party of a trade. Deeds move
// one at a time and may not move while improved.
func (d *Deed) Give(ctx context.Context, tx *pg.Tx, from, to *models.Player, amount int) error {
	if amount != 1 {
		return fault.User("can only trade properties without amounts")
	}

	row, err := d.row(ctx, tx, from.ChannelId, from.GameId)
	if err != nil {
		return err
	}
	if row == nil || row.UserId != from.UserId {
		return fault.User("must be owner of %s to trade it", d.Name)
	}
	if row.Improved() {
		return fault.User("%s carries houses, sell them before trading", d.Name)
	}

	row.UserId = to.UserId
	if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
		return fmt.Errorf("reassigning %s: %w", d.Name, err)
	}
	return nil
}

// Buy purchases the deed for the player standing on it.
func (d *Deed) Buy(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		if pl.CurrentSquare != d.Square {
			return fault.User("you can only buy deeds you are standing on")
		}
		if pl.Balance < d.Cost.Deed {
			return fault.User("cannot afford %s", d.Name)
		}

		row := &models.Deed{
			ChannelId: pl.ChannelId,
			GameId:    pl.GameId,
			DeedName:  d.Name,
			UserId:    pl.UserId,
		}
		res, err := tx.ModelContext(ctx, row).OnConflict("DO NOTHING").Insert()
		if err != nil {
			return fmt.Errorf("recording %s purchase: %w", d.Name, err)
		}
		if res.RowsAffected() == 0 {
			return fault.User("someone already owns %s", d.Name)
		}

		pl.Balance -= d.Cost.Deed
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "bought " + d.Name, nil
}

// BuyHouse adds one house. Requires the full color set, even building and
// enough money.
func (d *Deed) BuyHouse(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		if pl.Balance < d.Cost.House {
			return fault.User("cannot afford a house on %s", d.Name)
		}

		set, err := d.set(ctx, tx, pl.ChannelId, pl.GameId)
		if err != nil {
			return err
		}

		row := set[d.Name]
		if row == nil || row.UserId != pl.UserId {
			return fault.User("you do not own %s", d.Name)
		}
		if row.Hotel {
			return fault.User("%s already carries a hotel", d.Name)
		}
		if row.Houses >= 4 {
			return fault.User("you already own 4 houses on %s", d.Name)
		}
		if !ownsFullSet(set, d.setNames(), pl.UserId) {
			return fault.User("you do not own all deeds in monopoly %s", d.colorName())
		}
		if !canBuildEvenly(row, set, d.setNames()) {
			return fault.User("must build houses evenly in monopoly %s", d.colorName())
		}

		pl.Balance -= d.Cost.House
		row.Houses++

		if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
			return fmt.Errorf("adding house on %s: %w", d.Name, err)
		}
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "bought house on " + d.Name, nil
}

// BuyHotel upgrades 4 houses to a hotel. The whole set must be fully built.
func (d *Deed) BuyHotel(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		if pl.Balance < d.Cost.Hotel {
			return fault.User("cannot afford a hotel on %s", d.Name)
		}

		set, err := d.set(ctx, tx, pl.ChannelId, pl.GameId)
		if err != nil {
			return err
		}

		row := set[d.Name]
		if row == nil || row.UserId != pl.UserId {
			return fault.User("you do not own %s", d.Name)
		}
		if row.Hotel {
			return fault.User("you already own a hotel on %s", d.Name)
		}
		if !ownsFullSet(set, d.setNames(), pl.UserId) {
			return fault.User("you do not own all deeds in monopoly %s", d.colorName())
		}
		for _, name := range d.setNames() {
			r := set[name]
			if r == nil || (r.Houses < 4 && !r.Hotel) {
				return fault.User("you do not own 4 houses or a hotel on all deeds in monopoly %s", d.colorName())
			}
		}

		pl.Balance -= d.Cost.Hotel
		row.Houses = 0
		row.Hotel = true

		if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
			return fmt.Errorf("adding hotel on %s: %w", d.Name, err)
		}
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "bought hotel on " + d.Name, nil
}

// Mortgage credits the mortgage value. The whole color set must be
// unimproved first.
func (d *Deed) Mortgage(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		set, err := d.set(ctx, tx, pl.ChannelId, pl.GameId)
		if err != nil {
			return err
		}

		row := set[d.Name]
		if row == nil || row.UserId != pl.UserId {
			return fault.User("you must own %s to mortgage it", d.Name)
		}
		if row.Mortgaged {
			return fault.User("%s is already mortgaged", d.Name)
		}
		for _, name := range d.setNames() {
			if r := set[name]; r != nil && r.UserId == pl.UserId && r.Improved() {
				return fault.User("all deeds on monopoly %s must be unimproved to mortgage %s", d.colorName(), d.Name)
			}
		}

		row.Mortgaged = true
		pl.Balance += d.MortgageValue

		if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
			return fmt.Errorf("mortgaging %s: %w", d.Name, err)
		}
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "mortgaged " + d.Name, nil
}

func lockPlayer(ctx context.Context, tx *pg.Tx, player *models.Player) (*models.Player, error) {
	pl := &models.Player{
		UserId:    player.UserId,
		ChannelId: player.ChannelId,
		GameId:    player.GameId,
	}
	if err := tx.ModelContext(ctx, pl).WherePK().For("UPDATE").Select(); err != nil {
		return nil, fmt.Errorf("locking player %s: %w", player.UserId, err)
	}
	return pl, nil
}

func lookupOwner(ctx *Context, userId string) (models.Member, bool, error) {
	if userId == "" || ctx.Members == nil {
		return models.Member{}, false, nil
	}
	return ctx.Members.Member(ctx.Ctx, userId)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
