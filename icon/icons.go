package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Skip
	Info
	Login
	Download
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   "-",
		kaomoji: "(¬_¬)",
		squares: "🟨",
	},
	Info: {
		emoji:   "💡",
		nerd:    "",
		plain:   "i",
		kaomoji: "(・o・)",
		squares: "🟪",
	},
	Login: {
		emoji:   "🔑",
		nerd:    "",
		plain:   ">>",
		kaomoji: "(๑•̀ㅂ•́)و",
		squares: "🟧",
	},
	Download: {
		emoji:   "📥",
		nerd:    "",
		plain:   "v",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "⬛",
	},
}
