package board

import "github.com/boardgamehq/monopoly-engine/app/models"

// SendToJail teleports the player to the jail square and starts the jail
// escalation counter.
func SendToJail(p *models.Player) {
	p.CurrentSquare = JailSquare
	p.Jailed = 1
}

type Start struct{}

func (Start) Position() int      { return 0 }
func (Start) SearchTerm() string { return "Start" }

func (Start) Display(_ *Context) (*models.Display, error) {
	return &models.Display{}, nil
}

func (Start) Land(_ *Context) ([]models.EmbedField, error) {
	return nil, nil
}

type Jail struct{}

func (Jail) Position() int      { return JailSquare }
func (Jail) SearchTerm() string { return "Jail" }

func (Jail) Display(_ *Context) (*models.Display, error) {
	d := &models.Display{}
	d.AddField("Jail", "You are visiting the jail")
	return d, nil
}

// Landing on jail by movement is just visiting.
func (Jail) Land(_ *Context) ([]models.EmbedField, error) {
	return nil, nil
}

type GoToJail struct{}

func (GoToJail) Position() int      { return 30 }
func (GoToJail) SearchTerm() string { return "Go to Jail!" }

func (GoToJail) Display(_ *Context) (*models.Display, error) {
	d := &models.Display{}
	d.AddField("Go to Jail!", "You're going to jail from here")
	return d, nil
}

func (GoToJail) Land(ctx *Context) ([]models.EmbedField, error) {
	SendToJail(ctx.Player)
	return nil, nil
}
