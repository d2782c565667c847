package models

// Display is the outbound surface of the engine: structured content plus
// zero or more affordances for the chat layer to render. The engine never
// sends anything itself.
type Display struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`

	// Callbacks are consumed by the registry before the display goes out;
	// the chat layer sees rendered affordances with tokens instead.
	Callbacks []Affordance `json:"-"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Affordance is a follow-up action a display offers. Args must marshal to
// the argument tuple the handler key expects; the callback registry turns
// the pair into a durable token.
type Affordance struct {
	Key  string
	Args interface{}
}

// RenderedAffordance is what the chat layer actually shows: the persisted
// token plus a glyph.
type RenderedAffordance struct {
	Token string `json:"token"`
	Emoji string `json:"emoji"`
}

func (d *Display) AddField(name, value string) {
	d.Fields = append(d.Fields, EmbedField{Name: name, Value: value})
}

func (d *Display) AddInline(name, value string) {
	d.Fields = append(d.Fields, EmbedField{Name: name, Value: value, Inline: true})
}
