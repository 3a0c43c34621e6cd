package sink

import (
	"encoding/json"
	"io"

	"github.com/wronai/repodash/pkg/card"
)

type jsonPage struct {
	Source    string     `json:"source,omitempty"`
	Active    string     `json:"active"`
	Languages []string   `json:"languages"`
	Banner    string     `json:"banner,omitempty"`
	Cards     []jsonCard `json:"cards"`
}

type jsonCard struct {
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Language      string      `json:"language"`
	LanguageColor string      `json:"languageColor"`
	Updated       string      `json:"updated"`
	Archived      bool        `json:"archived,omitempty"`
	Fork          bool        `json:"fork,omitempty"`
	Blocks        []jsonBlock `json:"blocks"`
	Links         []card.Link `json:"links"`
}

type jsonBlock struct {
	Kind card.BlockKind `json:"kind"`
	Text string         `json:"text"`
}

// JSON writes p as an indented JSON document.
func JSON(w io.Writer, p Page) error {
	out := jsonPage{
		Source:    p.Source,
		Active:    p.Active,
		Languages: p.Languages(),
		Banner:    p.Banner,
		Cards:     make([]jsonCard, len(p.Cards)),
	}
	if out.Languages == nil {
		out.Languages = []string{}
	}
	for i, c := range p.Cards {
		jc := jsonCard{
			Name:          c.Name,
			Description:   c.Description,
			Language:      c.Language.Text,
			LanguageColor: c.Language.Color,
			Updated:       c.Updated,
			Archived:      c.Archived,
			Fork:          c.Fork,
			Blocks:        make([]jsonBlock, len(c.Blocks)),
			Links:         c.Links,
		}
		for j, b := range c.Blocks {
			jc.Blocks[j] = jsonBlock{Kind: b.Kind, Text: b.Text}
		}
		if jc.Links == nil {
			jc.Links = []card.Link{}
		}
		out.Cards[i] = jc
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
