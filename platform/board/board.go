// Package board holds the static 40-square monopoly board and the
// capability interfaces squares implement. The board is built once at
// startup and injected; nothing in here is mutable after New.
package board

import (
	"context"
	"sort"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

const (
	MaxSquares = 40
	JailSquare = 10
)

// Directory is the slice of the chat-platform boundary squares need: turning
// a user id into a display identity.
type Directory interface {
	Member(ctx context.Context, userId string) (models.Member, bool, error)
}

// Context carries everything a square needs to display itself or apply its
// landing effect. DB is *pg.DB for plain displays and *pg.Tx when invoked
// inside the roll transaction. Player is nil for displays without an actor.
type Context struct {
	Ctx     context.Context
	DB      orm.DB
	Game    *models.Game
	Player  *models.Player
	Members Directory
}

// Displayable produces embed content plus the follow-up actions to offer.
type Displayable interface {
	Display(ctx *Context) (*models.Display, error)
}

// Landable applies side effects when a player ends a turn on the square.
// It may mutate ctx.Player in memory; the caller persists the row.
type Landable interface {
	Land(ctx *Context) ([]models.EmbedField, error)
}

type Searchable interface {
	SearchTerm() string
}

// Square is one of the 40 board positions. Every square displays and lands;
// deeds and railroads additionally implement Tradable, Purchasable and
// Mortgageable.
type Square interface {
	Displayable
	Landable
	Searchable
	Position() int
}

// TradableKey is a stable identifier for a unit of value: currency or one
// specific asset. Used uniformly by rent and trade logic.
type TradableKey string

const KeyDollar TradableKey = "$"

// Tradable moves one unit of ownership (or an amount of currency) between
// two players inside an already-open transaction.
type Tradable interface {
	Key() TradableKey
	DisplayName() string
	ItemTerms() []string
	Give(ctx context.Context, tx *pg.Tx, from, to *models.Player, amount int) error
}

type Purchasable interface {
	Buy(ctx context.Context, db *pg.DB, player *models.Player) (string, error)
}

type Mortgageable interface {
	Mortgage(ctx context.Context, db *pg.DB, player *models.Player) (string, error)
}

// Capability downcasts. Squares are concrete structs; these make the
// "treat it as the Mortgageable one" conversion explicit at call sites.

func AsPurchasable(s Square) (Purchasable, bool) {
	p, ok := s.(Purchasable)
	return p, ok
}

func AsMortgageable(s Square) (Mortgageable, bool) {
	m, ok := s.(Mortgageable)
	return m, ok
}

func AsTradable(s Square) (Tradable, bool) {
	t, ok := s.(Tradable)
	return t, ok
}

func AsDeed(s Square) (*Deed, bool) {
	d, ok := s.(*Deed)
	return d, ok
}

// Board is the process-scoped square registry plus the derived tradable
// index.
type Board struct {
	squares   map[int]Square
	tradables map[TradableKey]Tradable
	index     []indexEntry
}

type indexEntry struct {
	term     string
	tradable Tradable
}

// SearchTarget pairs a human search term with the displayable it resolves
// to; the show command merges these with live member names.
type SearchTarget struct {
	Term        string
	Displayable Displayable
}

// New builds the standard board: start, jail, go-to-jail, three community
// chests, 22 deeds and 4 railroads.
func New() *Board {
	b := &Board{
		squares:   make(map[int]Square),
		tradables: map[TradableKey]Tradable{KeyDollar: dollar{}},
	}

	b.add(&Start{}, &Jail{}, &GoToJail{})
	for _, c := range chestSquares() {
		b.add(c)
	}
	for _, d := range deeds() {
		b.add(d)
	}
	for _, r := range railroads() {
		b.add(r)
	}

	// Index in board order so search tie-breaks are stable.
	positions := make([]int, 0, len(b.squares))
	for pos := range b.squares {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	for _, pos := range positions {
		t, ok := AsTradable(b.squares[pos])
		if !ok {
			continue
		}
		b.tradables[t.Key()] = t
		for _, term := range t.ItemTerms() {
			b.index = append(b.index, indexEntry{term: term, tradable: t})
		}
	}

	return b
}

func (b *Board) add(squares ...Square) {
	for _, s := range squares {
		b.squares[s.Position()] = s
	}
}

// FindSquare returns the square at position, if any. Positions without a
// defined square (chance, taxes, free parking) have no behavior.
func (b *Board) FindSquare(position int) (Square, bool) {
	s, ok := b.squares[position]
	return s, ok
}

// Tradable resolves a stable key back to the asset (or currency) it names.
func (b *Board) Tradable(key TradableKey) (Tradable, bool) {
	t, ok := b.tradables[key]
	return t, ok
}

// ResolveTradable finds the asset whose term best matches the free-text
// name. Best effort: typo tolerant, single winner, first registered wins
// ties.
func (b *Board) ResolveTradable(name string) (Tradable, bool) {
	terms := make([]string, len(b.index))
	for i, e := range b.index {
		terms[i] = e.term
	}
	i, ok := BestMatch(name, terms)
	if !ok {
		return nil, false
	}
	return b.index[i].tradable, true
}

// SearchTargets lists every square under its search term.
func (b *Board) SearchTargets() []SearchTarget {
	targets := make([]SearchTarget, 0, len(b.squares))
	for _, s := range b.squares {
		targets = append(targets, SearchTarget{Term: s.SearchTerm(), Displayable: s})
	}
	return targets
}
