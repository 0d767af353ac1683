package tui

type stage int

const (
	stageCompose stage = iota
	stageRefining
)

type popupKind int

const (
	popupNone popupKind = iota
	popupSuggestions
	popupPicker
	popupFiles
)

type pickerKind int

const (
	pickerModel pickerKind = iota
	pickerTheme
	pickerHistory
)

func (k pickerKind) title() string {
	switch k {
	case pickerModel:
		return "Models"
	case pickerTheme:
		return "Themes"
	case pickerHistory:
		return "History"
	default:
		return ""
	}
}

const heroTagline = "Compose, attach, refine."

const (
	minComposerWidth   = 20
	composerPadding    = 4
	maxComposerRows    = 6
	maxPopupRows       = 8
	historyLimit       = 50
	historyTitleLimit  = 60
	transcriptMinLines = 3
)

const composerPlaceholder = "Describe the task… (Enter to refine, Alt+Enter for a new line, / for commands)"

type transcriptEntry struct {
	Kind    string
	Content string
}

// slashCommand is a composer command. Commands with an argument are
// completed into the composer instead of running immediately.
type slashCommand struct {
	name        string
	description string
	takesArg    bool
}

var slashCommands = []slashCommand{
	{name: "model", description: "Switch model"},
	{name: "theme", description: "Switch color theme"},
	{name: "attach", description: "Attach a file as context", takesArg: true},
	{name: "files", description: "Review attached files"},
	{name: "history", description: "Reopen a previous prompt"},
	{name: "refine", description: "Refine again with feedback", takesArg: true},
	{name: "clear", description: "Clear the conversation"},
	{name: "help", description: "Toggle key help"},
	{name: "quit", description: "Exit"},
}

func lookupCommand(name string) (slashCommand, bool) {
	for _, cmd := range slashCommands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return slashCommand{}, false
}
