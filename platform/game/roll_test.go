package game

import (
	"strings"
	"testing"

	"github.com/boardgamehq/monopoly-engine/app/models"
	"github.com/boardgamehq/monopoly-engine/platform/board"
)

func hasNote(out rollOutcome, fragment string) bool {
	for _, n := range out.Notes {
		if strings.Contains(n, fragment) {
			return true
		}
	}
	return false
}

func TestApplyRollMoves(t *testing.T) {
	p := &models.Player{Balance: 1500}

	out := applyRoll(p, 3, 4)

	if !out.Moved || out.RollAgain {
		t.Fatalf("outcome = %+v", out)
	}
	if p.CurrentSquare != 7 {
		t.Errorf("square = %d, want 7", p.CurrentSquare)
	}
	if p.DoubleStreak != 0 || p.Balance != 1500 {
		t.Errorf("player = %+v", p)
	}
}

func TestApplyRollDoublesGoAgain(t *testing.T) {
	p := &models.Player{}

	out := applyRoll(p, 2, 2)

	if !out.Moved || !out.RollAgain {
		t.Fatalf("outcome = %+v", out)
	}
	if p.DoubleStreak != 1 || p.CurrentSquare != 4 {
		t.Errorf("player = %+v", p)
	}
	if !offerRollAgain(out, p) {
		t.Error("harmless landing should keep the extra roll")
	}
}

func TestRollAgainForfeitedWhenLandingJails(t *testing.T) {
	p := &models.Player{CurrentSquare: 22}

	out := applyRoll(p, 4, 4)
	if !out.Moved || !out.RollAgain || p.CurrentSquare != 30 {
		t.Fatalf("outcome = %+v, player = %+v", out, p)
	}

	// Go to Jail sits on 30; its landing effect jails the player.
	if _, err := (board.GoToJail{}).Land(&board.Context{Player: p}); err != nil {
		t.Fatal(err)
	}
	if p.Jailed != 1 || p.CurrentSquare != board.JailSquare {
		t.Fatalf("player = %+v", p)
	}

	if offerRollAgain(out, p) {
		t.Error("a player jailed by the landing must not roll again")
	}
}

func TestApplyRollThreeDoublesJails(t *testing.T) {
	p := &models.Player{DoubleStreak: 2, CurrentSquare: 7}

	out := applyRoll(p, 5, 5)

	if out.Moved || out.RollAgain {
		t.Fatalf("outcome = %+v", out)
	}
	if p.CurrentSquare != board.JailSquare || p.Jailed != 1 || p.DoubleStreak != 0 {
		t.Errorf("player = %+v", p)
	}
	if !hasNote(out, "going to Jail") {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestApplyRollStuckInJail(t *testing.T) {
	p := &models.Player{Jailed: 1, CurrentSquare: board.JailSquare}

	out := applyRoll(p, 2, 5)

	if out.Moved {
		t.Fatalf("outcome = %+v", out)
	}
	if p.Jailed != 2 || p.CurrentSquare != board.JailSquare {
		t.Errorf("player = %+v", p)
	}
	if !hasNote(out, "Still in jail") {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestApplyRollDoublesEscapeJail(t *testing.T) {
	p := &models.Player{Jailed: 2, CurrentSquare: board.JailSquare, Balance: 100}

	out := applyRoll(p, 4, 4)

	if !out.Moved {
		t.Fatalf("outcome = %+v", out)
	}
	if p.Jailed != 0 || p.CurrentSquare != board.JailSquare+8 {
		t.Errorf("player = %+v", p)
	}
	// The escape consumed the doubles, no extra turn.
	if out.RollAgain || p.DoubleStreak != 0 {
		t.Errorf("escape should not grant another roll: %+v", out)
	}
	if p.Balance != 100 {
		t.Errorf("no fine on escape, balance = %d", p.Balance)
	}
}

func TestApplyRollThirdTurnReleasesWithFine(t *testing.T) {
	p := &models.Player{Jailed: 3, CurrentSquare: board.JailSquare, Balance: 100}

	out := applyRoll(p, 2, 3)

	if !out.Moved {
		t.Fatalf("outcome = %+v", out)
	}
	if p.Jailed != 0 || p.Balance != 100-JailFine {
		t.Errorf("player = %+v", p)
	}
	if p.CurrentSquare != board.JailSquare+5 {
		t.Errorf("square = %d", p.CurrentSquare)
	}
	if !hasNote(out, "fine") {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestApplyRollGetOutOfJailCard(t *testing.T) {
	p := &models.Player{Jailed: 2, GetOutOfJail: true, CurrentSquare: board.JailSquare, Balance: 100}

	out := applyRoll(p, 1, 3)

	if !out.Moved {
		t.Fatalf("outcome = %+v", out)
	}
	if p.GetOutOfJail || p.Jailed != 0 {
		t.Errorf("card not consumed: %+v", p)
	}
	if p.Balance != 100 {
		t.Errorf("no fine with the card, balance = %d", p.Balance)
	}
	if !hasNote(out, "Released from Jail") {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestApplyRollPassingStart(t *testing.T) {
	p := &models.Player{CurrentSquare: 38, Balance: 0}

	out := applyRoll(p, 3, 4)

	if !out.Moved {
		t.Fatalf("outcome = %+v", out)
	}
	if p.CurrentSquare != 5 {
		t.Errorf("square = %d, want 5", p.CurrentSquare)
	}
	if p.Balance != PassStartBonus {
		t.Errorf("balance = %d, want %d", p.Balance, PassStartBonus)
	}
	if !hasNote(out, "Passed start") {
		t.Errorf("notes = %v", out.Notes)
	}
}

func TestApplyRollLandingExactlyOnStart(t *testing.T) {
	p := &models.Player{CurrentSquare: 35}

	applyRoll(p, 2, 3)

	if p.CurrentSquare != 0 {
		t.Errorf("square = %d, want 0", p.CurrentSquare)
	}
	if p.Balance != PassStartBonus {
		t.Errorf("balance = %d, want %d", p.Balance, PassStartBonus)
	}
}
