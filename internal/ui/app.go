package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/glimpse/internal/classify"
	"github.com/five82/glimpse/internal/prefs"
	"github.com/five82/glimpse/internal/submission"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    classify.Predictor
	Logger    *zap.Logger
	Endpoint  string
	StartDir  string
	ThemeName string
	PrefsPath string
}

// imageTypes limits the picker to formats the preview can decode. The filter
// is cosmetic; the controller itself does not validate files.
var imageTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    classify.Predictor
	logger    *zap.Logger
	endpoint  string
	prefsPath string
	lastDir   string

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool
	alert    Modal

	// Widgets
	picker  filepicker.Model
	spinner spinner.Model

	// Submission state
	ctrl *submission.Controller
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	picker := filepicker.New()
	picker.AllowedTypes = imageTypes
	picker.CurrentDirectory = startDirectory(opts.StartDir)
	picker.ShowPermissions = false
	picker.Styles = theme.PickerStyles()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Styles().AccentText

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		logger:    logger,
		endpoint:  opts.Endpoint,
		prefsPath: prefsPath,
		lastDir:   picker.CurrentDirectory,
		theme:     theme,
		keys:      DefaultKeyMap(),
		picker:    picker,
		spinner:   spin,
		ctrl:      submission.New(logger),
	}
}

// startDirectory picks the first usable directory among dir, the working
// directory and the home directory.
func startDirectory(dir string) string {
	candidates := []string{strings.TrimSpace(dir)}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, home)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return "."
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.picker.Init())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(tea.WindowSizeMsg{Width: m.pickerWidth(), Height: m.bodyHeight()})
		return m, cmd

	case previewMsg:
		return m.handlePreview(msg)

	case predictionMsg:
		m.ctrl.Complete(msg.ticket, msg.result, msg.err)
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is pending.
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Directory listings and other picker-internal messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.alert != nil {
		return m.alert.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != nil {
		modal, cmd, closed := m.alert.Update(msg, m.keys)
		if closed {
			m.alert = nil
		} else {
			m.alert = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Predict):
		return m.submit()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m, tea.Batch(cmd, m.selectFile(path))
	}
	return m, cmd
}

// selectFile records a new selection and starts reading its preview.
func (m *Model) selectFile(path string) tea.Cmd {
	file := submission.File{Name: filepath.Base(path), Path: path}
	if info, err := os.Stat(path); err == nil {
		file.Size = info.Size()
	}

	seq := m.ctrl.Select(file)

	if dir := filepath.Dir(path); dir != m.lastDir {
		m.lastDir = dir
		m.savePrefs()
	}
	return loadPreviewCmd(seq, path)
}

func (m Model) handlePreview(msg previewMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("preview read failed", zap.Uint64("seq", msg.seq), zap.Error(msg.err))
		return m, nil
	}
	m.ctrl.ApplyPreview(msg.seq, msg.preview)
	return m, nil
}

// submit validates the selection and starts a prediction. The binding is
// inert while a prediction is pending.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.ctrl.Loading() {
		return m, nil
	}
	ticket, err := m.ctrl.Begin()
	switch {
	case errors.Is(err, submission.ErrNoFile):
		m.alert = newAlert("No image selected", "Please select an image first!")
		return m, nil
	case err != nil:
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, predictCmd(m.ctx, m.client, ticket))
}

func (m *Model) setTheme(theme Theme) {
	m.theme = theme
	m.picker.Styles = theme.PickerStyles()
	m.spinner.Style = theme.Styles().AccentText
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastDir: m.lastDir}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// Snapshot exposes the controller state, mainly for tests and the views.
func (m Model) Snapshot() submission.Snapshot {
	return m.ctrl.Snapshot()
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Client == nil {
		return errors.New("ui requires a classification client")
	}
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
