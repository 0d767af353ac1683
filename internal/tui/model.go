package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/edward-r/prompt-maker/internal/attach"
	"github.com/edward-r/prompt-maker/internal/keys"
	"github.com/edward-r/prompt-maker/internal/llm"
	"github.com/edward-r/prompt-maker/internal/logger"
	"github.com/edward-r/prompt-maker/internal/popup"
	"github.com/edward-r/prompt-maker/internal/prompts"
	"github.com/edward-r/prompt-maker/internal/theme"
)

// Config wires runtime options into the TUI program.
type Config struct {
	LLM         llm.Client
	LLMConfig   llm.Config
	HistoryPath string
	Theme       string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	active := theme.Resolve(config.Theme)
	m := &model{
		config:        config,
		stage:         stageCompose,
		layout:        newPageLayout(),
		theme:         active,
		styles:        theme.NewStyles(active),
		composer:      newComposer(),
		spinner:       spin,
		viewport:      vp,
		jobs:          newJobBus(),
		viewportDirty: true,
		infoMessage:   "Write a draft and press Enter to refine it.",
	}
	if config.LLM == nil {
		m.infoMessage = "No model configured. Use /model to pick one."
	}
	m.relayout()
	return m
}

type model struct {
	config   Config
	stage    stage
	layout   pageLayout
	theme    theme.Theme
	styles   theme.Styles
	composer composer
	spinner  spinner.Model
	viewport viewport.Model
	jobs     *jobBus

	popup       popupKind
	suggestions popup.SuggestionState
	picker      popup.PickerState
	pickerKind  pickerKind
	files       popup.FilesState

	attachments   []attach.File
	history       []prompts.Entry
	transcript    []transcriptEntry
	lastRequest   *llm.RefineRequest
	lastRefined   string
	activeJobs    int
	viewportDirty bool
	infoMessage   string
	errorMessage  string
	helpVisible   bool
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height, m.popup != popupNone)
		m.relayout()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case jobSignalMsg:
		m.activeJobs++
		return m, m.spinner.Tick
	case jobResultEnvelope:
		if m.activeJobs > 0 {
			m.activeJobs--
		}
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case refineResultMsg:
		return m.handleRefineResult(msg)
	case attachResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("attach %s: %v", msg.path, msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.addAttachment(msg.file)
		return m, nil
	case saveResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("history not saved: %v", msg.err)
			return m, nil
		}
		m.history = append([]prompts.Entry{msg.entry}, m.history...)
		return m, nil
	case historyResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("load history: %v", msg.err)
			return m, nil
		}
		m.history = msg.entries
		if len(m.history) == 0 {
			m.infoMessage = "No saved prompts yet."
			return m, nil
		}
		m.openPicker(pickerHistory, historySections(m.history, time.Now()), "")
		return m, nil
	}
	return m, nil
}

func (m *model) busy() bool {
	return m.stage == stageRefining || m.activeJobs > 0
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := keys.Classify(msg)
	if in.Kind == keys.Quit {
		return m, tea.Quit
	}
	switch m.popup {
	case popupSuggestions:
		next, effect := popup.HandleSuggestionKey(m.suggestions, in)
		m.suggestions = next
		if effect.Kind != popup.EffectNone {
			return m.applyEffect(effect)
		}
		switch in.Kind {
		case keys.Up, keys.Down, keys.PageUp, keys.PageDown:
			return m, nil
		}
	case popupPicker:
		next, effect := popup.HandlePickerKey(m.picker, in)
		m.picker = next
		return m.applyEffect(effect)
	case popupFiles:
		next, effect := popup.HandleFilesKey(m.files, in)
		m.files = next
		return m.applyEffect(effect)
	}
	return m.handleComposerKey(in)
}

func (m *model) handleComposerKey(in keys.Intent) (tea.Model, tea.Cmd) {
	switch in.Kind {
	case keys.Submit:
		return m.submit()
	case keys.Cancel:
		if !m.composer.Empty() {
			m.composer = m.composer.Reset()
			m.syncSuggestions()
			return m, nil
		}
		if m.helpVisible {
			m.helpVisible = false
		}
		return m, nil
	case keys.Complete:
		if strings.HasPrefix(m.composer.Value(), "/") {
			m.syncSuggestions()
		}
		return m, nil
	case keys.PageUp:
		m.viewport.ViewUp()
		return m, nil
	case keys.PageDown:
		m.viewport.ViewDown()
		return m, nil
	}
	next, ok := m.composer.Apply(in)
	if !ok {
		return m, nil
	}
	m.composer = next
	m.syncSuggestions()
	return m, nil
}

// syncSuggestions keeps the command popup in step with the composer: it is
// open while the composer holds a bare "/command" prefix.
func (m *model) syncSuggestions() {
	value := m.composer.Value()
	isCommand := strings.HasPrefix(value, "/") && !strings.ContainsAny(value, " \n")
	switch {
	case isCommand && m.popup == popupSuggestions:
		m.suggestions = m.suggestions.Refilter(commandSuggestions(), value[1:])
	case isCommand && m.popup == popupNone:
		m.suggestions = popup.NewSuggestionState(commandSuggestions(), value[1:])
		m.openPopup(popupSuggestions)
	case !isCommand && m.popup == popupSuggestions:
		m.closePopup()
	}
}

func commandSuggestions() []popup.Suggestion {
	out := make([]popup.Suggestion, len(slashCommands))
	for i, cmd := range slashCommands {
		out[i] = popup.Suggestion{Name: cmd.name, Description: cmd.description}
	}
	return out
}

// applyEffect carries out what a popup reducer asked for.
func (m *model) applyEffect(effect popup.Effect) (tea.Model, tea.Cmd) {
	logger.ComponentLogger("tui").Debug("popup effect", "effect", effect.String())
	switch effect.Kind {
	case popup.EffectClose:
		m.closePopup()
		return m, nil
	case popup.EffectSelectSuggestion:
		m.closePopup()
		cmd, ok := lookupCommand(effect.Value)
		if !ok {
			return m, nil
		}
		if cmd.takesArg {
			m.composer = m.composer.Reset().SetValue("/" + cmd.name + " ")
			return m, nil
		}
		m.composer = m.composer.Reset()
		return m.runCommand(cmd.name, "")
	case popup.EffectSet:
		kind := m.pickerKind
		m.closePopup()
		switch kind {
		case pickerModel:
			m.switchModel(effect.Value)
		case pickerTheme:
			m.applyTheme(effect.Value)
		case pickerHistory:
			m.restoreHistory(effect.Value)
		}
		return m, nil
	case popup.EffectRemove:
		m.detach(effect.Value)
		if len(m.attachments) == 0 {
			m.closePopup()
		}
		return m, nil
	}
	return m, nil
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.composer.Value())
	if value == "" {
		m.infoMessage = "Write a draft first."
		return m, nil
	}
	if strings.HasPrefix(value, "/") {
		name, arg, _ := strings.Cut(strings.TrimPrefix(value, "/"), " ")
		if _, ok := lookupCommand(name); !ok {
			m.errorMessage = fmt.Sprintf("unknown command /%s", name)
			return m, nil
		}
		m.composer = m.composer.Reset()
		return m.runCommand(name, strings.TrimSpace(arg))
	}
	return m.startRefine(m.composer.Resolved(), "")
}

func (m *model) startRefine(instructions, feedback string) (tea.Model, tea.Cmd) {
	if m.config.LLM == nil {
		m.errorMessage = "No model configured. Use /model to pick one."
		return m, nil
	}
	if m.stage == stageRefining {
		m.infoMessage = "Refinement already running."
		return m, nil
	}
	req := llm.RefineRequest{
		Instructions: instructions,
		Feedback:     feedback,
		Attachments:  m.llmAttachments(),
	}
	m.lastRequest = &req
	if feedback != "" {
		m.appendTranscript("draft", "Feedback: "+feedback)
	} else {
		m.appendTranscript("draft", instructions)
	}
	m.composer = m.composer.Reset()
	m.stage = stageRefining
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Refining with %s…", m.config.LLM.Name())
	return m, tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindRefine, refineJob(m.config.LLM, req)))
}

func (m *model) handleRefineResult(msg refineResultMsg) (tea.Model, tea.Cmd) {
	m.stage = stageCompose
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.infoMessage = "Refinement failed. Press Enter to retry or /model to switch."
		m.appendTranscript("error", msg.err.Error())
		draft := msg.request.Instructions
		if msg.request.Feedback != "" {
			draft = "/refine " + msg.request.Feedback
		}
		m.composer = m.composer.SetValue(draft)
		return m, nil
	}
	m.errorMessage = ""
	m.lastRefined = msg.refined
	m.appendTranscript("refined", msg.refined)
	m.infoMessage = fmt.Sprintf("Refined by %s. Use /refine <feedback> to iterate.", msg.label)
	if m.config.HistoryPath == "" {
		return m, nil
	}
	entry := prompts.NewEntry(msg.request.Instructions, msg.refined, msg.model, attachmentPaths(msg.request.Attachments))
	return m, m.jobs.Start(jobKindSave, saveHistoryJob(m.config.HistoryPath, entry))
}

func (m *model) runCommand(name, arg string) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	switch name {
	case "model":
		m.openModelPicker()
	case "theme":
		m.openThemePicker()
	case "attach":
		if arg == "" {
			m.errorMessage = "usage: /attach <path>"
			return m, nil
		}
		path := expandHome(arg)
		m.infoMessage = fmt.Sprintf("Attaching %s…", filepath.Base(path))
		return m, m.jobs.Start(jobKindAttach, attachFileJob(path))
	case "files":
		if len(m.attachments) == 0 {
			m.infoMessage = "No files attached. Use /attach <path>."
			return m, nil
		}
		m.files = popup.FilesState{Paths: attachmentFilePaths(m.attachments)}
		m.openPopup(popupFiles)
	case "history":
		if m.config.HistoryPath == "" {
			m.infoMessage = "History is disabled."
			return m, nil
		}
		return m, m.jobs.Start(jobKindLoad, loadHistoryJob(m.config.HistoryPath))
	case "refine":
		if m.lastRequest == nil {
			m.infoMessage = "Nothing to refine yet."
			return m, nil
		}
		instructions := m.lastRequest.Instructions
		if m.lastRefined != "" {
			instructions = m.lastRefined
		}
		return m.startRefine(instructions, arg)
	case "clear":
		m.transcript = nil
		m.lastRequest = nil
		m.lastRefined = ""
		m.viewportDirty = true
		m.infoMessage = "Conversation cleared."
	case "help":
		m.helpVisible = !m.helpVisible
	case "quit":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) openModelPicker() {
	var sections []popup.Section
	for _, group := range llm.Catalog(m.config.LLM) {
		section := popup.Section{Title: group.Title}
		for _, name := range group.Models {
			section.Items = append(section.Items, popup.Item{Label: name, Value: group.Provider + "/" + name})
		}
		sections = append(sections, section)
	}
	current := ""
	if m.config.LLM != nil {
		current = llm.ProviderOf(m.config.LLM) + "/" + m.config.LLM.Model()
	}
	m.openPicker(pickerModel, sections, current)
}

func (m *model) openThemePicker() {
	section := popup.Section{}
	for _, t := range theme.All() {
		section.Items = append(section.Items, popup.Item{Label: t.Name, Value: t.Name})
	}
	m.openPicker(pickerTheme, []popup.Section{section}, m.theme.Name)
}

// historySections groups entries by day, newest first.
func historySections(entries []prompts.Entry, now time.Time) []popup.Section {
	var sections []popup.Section
	for _, entry := range entries {
		title := dayLabel(entry.CreatedAt, now)
		if len(sections) == 0 || sections[len(sections)-1].Title != title {
			sections = append(sections, popup.Section{Title: title})
		}
		last := &sections[len(sections)-1]
		last.Items = append(last.Items, popup.Item{
			Label:  entry.Title(historyTitleLimit),
			Value:  entry.ID,
			Detail: entry.Model,
		})
	}
	return sections
}

func dayLabel(at, now time.Time) string {
	y1, m1, d1 := at.Local().Date()
	y2, m2, d2 := now.Local().Date()
	switch {
	case y1 == y2 && m1 == m2 && d1 == d2:
		return "Today"
	case at.Local().Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.Local)) &&
		!at.Local().Before(time.Date(y2, m2, d2-1, 0, 0, 0, 0, time.Local)):
		return "Yesterday"
	default:
		return at.Local().Format("Mon Jan 2, 2006")
	}
}

func (m *model) openPicker(kind pickerKind, sections []popup.Section, current string) {
	m.pickerKind = kind
	m.picker = popup.NewPicker(sections, current)
	m.openPopup(popupPicker)
}

func (m *model) openPopup(kind popupKind) {
	m.popup = kind
	m.relayout()
}

func (m *model) closePopup() {
	m.popup = popupNone
	m.relayout()
}

// relayout recomputes the page split and resizes the transcript viewport.
func (m *model) relayout() {
	m.layout.Update(m.layout.windowWidth, m.layout.windowHeight, m.popup != popupNone)
	m.viewport.Width = m.layout.contentWidth
	m.viewport.Height = m.layout.transcriptHeight
	m.viewportDirty = true
}

func (m *model) switchModel(ref string) {
	provider, name := llm.SplitModelRef(ref)
	cfg := m.config.LLMConfig
	if provider != "" && !strings.EqualFold(provider, cfg.Provider) {
		cfg.Endpoint = ""
	}
	if provider != "" {
		cfg.Provider = provider
	}
	cfg.Model = name
	client, err := llm.NewFromEnv(cfg)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.config.LLM = client
	m.config.LLMConfig = cfg
	m.infoMessage = fmt.Sprintf("Using %s.", client.Name())
	logger.ComponentLogger("tui").Info("model switched", "provider", cfg.Provider, "model", cfg.Model)
}

func (m *model) applyTheme(name string) {
	t, ok := theme.Lookup(name)
	if !ok {
		m.errorMessage = fmt.Sprintf("unknown theme %q", name)
		return
	}
	m.theme = t
	m.styles = theme.NewStyles(t)
	m.viewportDirty = true
	m.infoMessage = fmt.Sprintf("Theme set to %s.", t.Name)
}

func (m *model) restoreHistory(id string) {
	for _, entry := range m.history {
		if entry.ID != id {
			continue
		}
		m.composer = newComposer().SetValue(entry.Instructions)
		m.lastRequest = &llm.RefineRequest{Instructions: entry.Instructions}
		m.lastRefined = entry.Refined
		m.appendTranscript("system", fmt.Sprintf("Restored prompt from %s.", entry.CreatedAt.Local().Format("Jan 2 15:04")))
		if entry.Refined != "" {
			m.appendTranscript("refined", entry.Refined)
		}
		m.infoMessage = "Prompt restored. Edit and press Enter to refine again."
		return
	}
	m.errorMessage = "history entry not found"
}

func (m *model) addAttachment(file attach.File) {
	for i, existing := range m.attachments {
		if existing.Path == file.Path {
			m.attachments[i] = file
			m.infoMessage = fmt.Sprintf("Reloaded %s.", file.Name)
			return
		}
	}
	m.attachments = append(m.attachments, file)
	m.infoMessage = fmt.Sprintf("Attached %s (%d lines).", file.Name, file.Lines)
}

func (m *model) detach(path string) {
	for i, existing := range m.attachments {
		if existing.Path == path {
			m.attachments = append(m.attachments[:i:i], m.attachments[i+1:]...)
			m.infoMessage = fmt.Sprintf("Detached %s.", existing.Name)
			return
		}
	}
}

func (m *model) llmAttachments() []llm.Attachment {
	out := make([]llm.Attachment, 0, len(m.attachments))
	for _, file := range m.attachments {
		out = append(out, llm.Attachment{Name: file.Path, Content: file.Content})
	}
	return out
}

func (m *model) appendTranscript(kind, content string) {
	m.transcript = append(m.transcript, transcriptEntry{Kind: kind, Content: content})
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewport.SetContent(m.buildTranscript())
	m.viewport.GotoBottom()
	m.viewportDirty = false
}

func attachmentFilePaths(files []attach.File) []string {
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}
	return paths
}

func attachmentPaths(attachments []llm.Attachment) []string {
	paths := make([]string, len(attachments))
	for i, a := range attachments {
		paths[i] = a.Name
	}
	return paths
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
