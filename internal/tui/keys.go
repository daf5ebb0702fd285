package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the browse and edit modes. Table navigation
// (j/k, pgup/pgdown, g/G) is handled by the table itself.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	Save       key.Binding
	Cancel     key.Binding
	Find       key.Binding
	FindNext   key.Binding
	Replace    key.Binding
	ReplaceAll key.Binding
	PrevLang   key.Binding
	NextLang   key.Binding
	Export     key.Binding
	Import     key.Binding
	Open       key.Binding
	SaveAs     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Find: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		Replace: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replace in row"),
		),
		ReplaceAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "replace all"),
		),
		PrevLang: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev language"),
		),
		NextLang: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next language"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export column"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import column"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "save as"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Save, k.Find, k.FindNext, k.PrevLang, k.NextLang, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit, k.Save, k.SaveAs, k.Open},
		{k.Find, k.FindNext, k.Replace, k.ReplaceAll},
		{k.PrevLang, k.NextLang, k.Export, k.Import},
		{k.Help, k.Quit},
	}
}

// editKeyMap is shown while the editor has focus.
type editKeyMap struct {
	Commit key.Binding
	Cancel key.Binding
}

func (k keyMap) editing() editKeyMap {
	return editKeyMap{
		Commit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "commit")),
		Cancel: k.Cancel,
	}
}

func (k editKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Commit, k.Cancel} }
func (k editKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
