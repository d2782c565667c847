package board

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
)

// Railroad is the static description of one railroad square. Rent depends
// on how many railroads the same owner holds, counted at landing time.
type Railroad struct {
	Name          string
	Square        int
	Price         int
	MortgageValue int

	// Rent by number of railroads owned, index 0 unused.
	Rent [5]int
}

func (r *Railroad) Position() int       { return r.Square }
func (r *Railroad) SearchTerm() string  { return r.Name }
func (r *Railroad) Key() TradableKey    { return TradableKey(r.Name) }
func (r *Railroad) DisplayName() string { return r.Name }
func (r *Railroad) ItemTerms() []string { return []string{r.Name} }

func (r *Railroad) row(ctx context.Context, db orm.DB, channelId string, gameId int) (*models.Railroad, error) {
	rr := new(models.Railroad)
	err := db.ModelContext(ctx, rr).
		Where("channel_id = ? AND game_id = ? AND railroad_name = ?", channelId, gameId, r.Name).
		Select()
	if err == pg.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading railroad %s: %w", r.Name, err)
	}
	return rr, nil
}

func (r *Railroad) Display(ctx *Context) (*models.Display, error) {
	row, err := r.row(ctx.Ctx, ctx.DB, ctx.Game.ChannelId, ctx.Game.GameId)
	if err != nil {
		return nil, err
	}

	owner := "--------"
	mortgaged := false
	if row != nil {
		mortgaged = row.Mortgaged
		if member, ok, err := lookupOwner(ctx, row.UserId); err != nil {
			return nil, err
		} else if ok {
			owner = member.Name
		} else if row.UserId != "" {
			owner = "N/A"
		}
	}

	display := &models.Display{Color: 0xeeeeee}
	display.AddInline("Railroad", r.Name)
	display.AddInline("Owner", owner)
	display.AddInline("Mortgaged", yesNo(mortgaged))
	display.AddInline("Rent", Dollar(r.Rent[1]))
	display.AddInline("Rent if 2 R.R are owned", Dollar(r.Rent[2]))
	display.AddInline("Rent if 3 R.R are owned", Dollar(r.Rent[3]))
	display.AddInline("Rent if 4 R.R are owned", Dollar(r.Rent[4]))
	display.AddInline("Price", Dollar(r.Price))
	display.AddInline("Mortgage value", Dollar(r.MortgageValue))

	display.Callbacks = []models.Affordance{
		{Key: models.CallbackBuy, Args: models.SquareArgs{Square: r.Square}},
		{Key: models.CallbackMortgage, Args: models.SquareArgs{Square: r.Square}},
	}

	return display, nil
}

// Land charges railroad rent, scaled by the owner's railroad count at
// resolution time.
func (r *Railroad) Land(ctx *Context) ([]models.EmbedField, error) {
	row, err := r.row(ctx.Ctx, ctx.DB, ctx.Player.ChannelId, ctx.Player.GameId)
	if err != nil {
		return nil, err
	}
	if row == nil || row.UserId == "" || row.UserId == ctx.Player.UserId || row.Mortgaged {
		return nil, nil
	}

	owned, err := ctx.DB.ModelContext(ctx.Ctx, (*models.Railroad)(nil)).
		Where("channel_id = ? AND game_id = ? AND user_id = ?", ctx.Player.ChannelId, ctx.Player.GameId, row.UserId).
		Count()
	if err != nil {
		return nil, fmt.Errorf("counting %s owner railroads: %w", r.Name, err)
	}
	if owned < 1 || owned > 4 {
		return nil, fmt.Errorf("bad number of owned railroads: %d", owned)
	}

	rent := r.Rent[owned]

	owner := new(models.Player)
	err = ctx.DB.ModelContext(ctx.Ctx, owner).
		Where("user_id = ? AND channel_id = ? AND game_id = ?", row.UserId, ctx.Player.ChannelId, ctx.Player.GameId).
		Select()
	if err != nil {
		return nil, fmt.Errorf("missing owner of %s: %w", r.Name, err)
	}

	owner.Balance += rent
	ctx.Player.Balance -= rent

	if _, err := ctx.DB.ModelContext(ctx.Ctx, owner).WherePK().Update(); err != nil {
		return nil, fmt.Errorf("crediting rent for %s: %w", r.Name, err)
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

func (r *Railroad) Give(ctx context.Context, tx *pg.Tx, from, to *models.Player, amount int) error {
	if amount != 1 {
		return fault.User("can only trade railroads without amounts")
	}

	row, err := r.row(ctx, tx, from.ChannelId, from.GameId)
	if err != nil {
		return err
	}
	if row == nil || row.UserId != from.UserId {
		return fault.User("must be owner of %s to trade it", r.Name)
	}

	row.UserId = to.UserId
	if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
		return fmt.Errorf("reassigning %s: %w", r.Name, err)
	}
	return nil
}

func (r *Railroad) Buy(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		if pl.CurrentSquare != r.Square {
			return fault.User("you can only buy railroads you are standing on")
		}
		if pl.Balance < r.Price {
			return fault.User("cannot afford %s", r.Name)
		}

		row := &models.Railroad{
			ChannelId:    pl.ChannelId,
			GameId:       pl.GameId,
			RailroadName: r.Name,
			UserId:       pl.UserId,
		}
		res, err := tx.ModelContext(ctx, row).OnConflict("DO NOTHING").Insert()
		if err != nil {
			return fmt.Errorf("recording %s purchase: %w", r.Name, err)
		}
		if res.RowsAffected() == 0 {
			return fault.User("someone already owns %s", r.Name)
		}

		pl.Balance -= r.Price
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "bought " + r.Name, nil
}

func (r *Railroad) Mortgage(ctx context.Context, db *pg.DB, player *models.Player) (string, error) {
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		pl, err := lockPlayer(ctx, tx, player)
		if err != nil {
			return err
		}

		row, err := r.row(ctx, tx, pl.ChannelId, pl.GameId)
		if err != nil {
			return err
		}
		if row == nil || row.UserId != pl.UserId {
			return fault.User("you must own %s to mortgage it", r.Name)
		}
		if row.Mortgaged {
			return fault.User("%s is already mortgaged", r.Name)
		}

		row.Mortgaged = true
		pl.Balance += r.MortgageValue

		if _, err := tx.ModelContext(ctx, row).WherePK().Update(); err != nil {
			return fmt.Errorf("mortgaging %s: %w", r.Name, err)
		}
		return savePlayer(ctx, tx, pl)
	})
	if err != nil {
		return "", err
	}
	return "mortgaged " + r.Name, nil
}

var allRailroads = []*Railroad{
	{Name: "Railroad 1", Square: 5, Price: 200, MortgageValue: 100, Rent: [5]int{0, 25, 50, 100, 200}},
	{Name: "Railroad 2", Square: 15, Price: 200, MortgageValue: 100, Rent: [5]int{0, 25, 50, 100, 200}},
	{Name: "Railroad 3", Square: 25, Price: 200, MortgageValue: 100, Rent: [5]int{0, 25, 50, 100, 200}},
	{Name: "Railroad 4", Square: 35, Price: 200, MortgageValue: 100, Rent: [5]int{0, 25, 50, 100, 200}},
}

func railroads() []*Railroad { return allRailroads }
