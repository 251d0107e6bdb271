// Package icon renders status symbols in the variant chosen with icons.variant.
package icon

import (
	"github.com/echo360-dl/echo360/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) variant(name string) string {
	return map[string]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[name]
}

// Get renders i, or returns "" for an unknown variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.variant(viper.GetString(key.IconsVariant))
}
