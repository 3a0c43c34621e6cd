package card

import (
	"time"

	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/present"
)

// BlockKind identifies a code block on a card.
type BlockKind string

const (
	BlockInstall    BlockKind = "install"
	BlockCloneHTTPS BlockKind = "clone-https"
	BlockCloneSSH   BlockKind = "clone-ssh"
)

// CodeBlock is a copyable literal, such as an install or clone command.
type CodeBlock struct {
	Kind  BlockKind
	Label string
	Text  string
	Copy  *Affordance `json:"-"`
}

// Link is an outbound link shown at the bottom of a card.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Badge is a colored label.
type Badge struct {
	Text  string
	Color string
}

// Card is one rendered repository.
type Card struct {
	Name        string
	Description string
	// Placeholder is true when Description is the "no description" text.
	Placeholder bool
	Language    Badge
	Lang        string // raw language value matched by filters, may be empty
	Updated     string // "Updated 3 days ago"
	Archived    bool
	Fork        bool
	Blocks      []CodeBlock
	Links       []Link
}

// Build assembles the card for r from its derived view fields.
//
// Blocks come in a fixed order: Install (when the record has a non-blank
// install command), Clone HTTPS, then Clone SSH (when it can be derived).
// Links are Code, then Website and PyPI when present.
func Build(r catalog.Repository, v present.View) Card {
	c := Card{
		Name:        r.Name,
		Description: v.DescriptionText,
		Placeholder: r.Description == "",
		Language:    Badge{Text: v.LanguageLabel, Color: v.Color},
		Lang:        r.Language,
		Updated:     "Updated " + v.Updated,
		Archived:    r.IsArchived,
		Fork:        r.IsFork,
	}

	if v.HasInstall {
		c.Blocks = append(c.Blocks, newBlock(BlockInstall, "Install", v.InstallCommand))
	}
	if v.CloneHTTPS != "" {
		c.Blocks = append(c.Blocks, newBlock(BlockCloneHTTPS, "Clone (HTTPS)", "git clone "+v.CloneHTTPS))
	}
	if v.HasSSH {
		c.Blocks = append(c.Blocks, newBlock(BlockCloneSSH, "Clone (SSH)", "git clone "+v.CloneSSH))
	}

	if r.URL != "" {
		c.Links = append(c.Links, Link{Label: "Code", URL: r.URL})
	}
	if r.Website != "" {
		c.Links = append(c.Links, Link{Label: "Website", URL: r.Website})
	}
	if v.PackageURL != "" {
		c.Links = append(c.Links, Link{Label: "PyPI", URL: v.PackageURL})
	}
	return c
}

// BuildAll derives and builds a card per record, in catalog order.
func BuildAll(c catalog.Catalog, now time.Time) []Card {
	cards := make([]Card, len(c))
	for i, r := range c {
		cards[i] = Build(r, present.Derive(r, now))
	}
	return cards
}

// Block returns the block of the given kind, if the card has one.
func (c Card) Block(kind BlockKind) (CodeBlock, bool) {
	for _, b := range c.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return CodeBlock{}, false
}

func newBlock(kind BlockKind, label, text string) CodeBlock {
	return CodeBlock{Kind: kind, Label: label, Text: text, Copy: NewAffordance(text)}
}
