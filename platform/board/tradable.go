package board

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/pkg/fault"
)

// dollar is the currency tradable. It has no search terms; trade
// expressions name it with the $<amount> form directly.
type dollar struct{}

func (dollar) Key() TradableKey    { return KeyDollar }
func (dollar) DisplayName() string { return "$" }
func (dollar) ItemTerms() []string { return nil }

func (dollar) Give(ctx context.Context, tx *pg.Tx, from, to *models.Player, amount int) error {
	if from.Balance < amount {
		return fault.User("not enough money")
	}

	from.Balance -= amount
	to.Balance += amount

	if err := savePlayer(ctx, tx, from); err != nil {
		return err
	}
	return savePlayer(ctx, tx, to)
}

func savePlayer(ctx context.Context, tx *pg.Tx, p *models.Player) error {
	if _, err := tx.ModelContext(ctx, p).WherePK().Update(); err != nil {
		return fmt.Errorf("saving player %s: %w", p.UserId, err)
	}
	return nil
}

// Dollar formats an amount the way displays expect.
func Dollar(amount int) string {
	return fmt.Sprintf("$%d", amount)
}
