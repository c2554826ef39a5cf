package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/core"
	"github.com/nvoronin/railrush/internal/sim"
	"github.com/nvoronin/railrush/internal/storage"
)

// quickSlot is the save slot used by the in-game quick save.
const quickSlot = "quick"

// Options configures a play session.
type Options struct {
	FPS        int
	Seed       int64
	ResumeSlot string // Restore a saved snapshot before the first tick
	Width      int
	Height     int
}

// Model is the Bubble Tea model driving one simulation.
type Model struct {
	game   *sim.Game
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger

	opts      Options
	state     sim.State
	width     int
	height    int
	warn      bool
	startedAt time.Time
	runSaved  bool
	quitting  bool
	saveNote  string
}

// NewModel creates a model with a freshly built simulation.
func NewModel(cfg config.Config, store *storage.Store, logger *log.Logger, opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	game, err := sim.New(cfg, opts.Seed, logger)
	if err != nil {
		return Model{}, err
	}

	if opts.ResumeSlot != "" && store != nil {
		if data, loadErr := store.LoadSlot(opts.ResumeSlot); loadErr == nil && data != nil {
			if snap, decErr := sim.DecodeSnapshot(data); decErr == nil {
				game.Restore(snap)
			} else if logger != nil {
				logger.Warn("invalid snapshot, starting fresh", "slot", opts.ResumeSlot, "error", decErr)
			}
		}
	}

	return Model{
		game:      game,
		cfg:       cfg,
		store:     store,
		logger:    logger,
		opts:      opts,
		state:     game.State(),
		width:     opts.Width,
		height:    opts.Height,
		startedAt: time.Now(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.game.Dispose()
		m.quitting = true
		return m, tea.Quit

	case "left", "a":
		m.requestLane(m.game.TargetLane() - 1)
	case "right", "d":
		m.requestLane(m.game.TargetLane() + 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.requestLane(int(msg.String()[0] - '0'))

	case "p", "esc":
		m.game.SetPaused(!m.state.Paused)
		m.state = m.game.State()

	case "ctrl+s":
		m.quickSave()

	case "r":
		if m.state.Over {
			return m.restart()
		}
	}
	return m, nil
}

// requestLane forwards a lane-change request, clamping so arrow keys at the
// edge of the track are a quiet no-op instead of an error.
func (m *Model) requestLane(n int) {
	n = core.Clamp(n, 1, m.cfg.Track.LaneCount)
	//nolint:errcheck // Clamped above; a same-lane request is a no-op
	m.game.RequestLaneChange(n)
}

// quickSave persists the current progression snapshot to the quick slot.
func (m *Model) quickSave() {
	if m.store == nil {
		return
	}
	data, err := sim.EncodeSnapshot(m.game.Snapshot())
	if err != nil {
		return
	}
	if err := m.store.SaveSlot(quickSlot, data); err == nil {
		m.saveNote = "saved"
	}
}

// restart tears the old simulation down and starts a fresh one.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.game.Dispose()
	game, err := sim.New(m.cfg, time.Now().UnixNano(), m.logger)
	if err != nil {
		// Config was valid for the first run; treat failure as fatal.
		m.quitting = true
		return m, tea.Quit
	}
	m.game = game
	m.state = game.State()
	m.runSaved = false
	m.saveNote = ""
	m.startedAt = time.Now()
	return m, nil
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Advance(1.0 / float64(m.opts.FPS))
	m.state = result.State
	m.warn = !m.state.Over && m.game.Near(m.cfg.Track.SlabLength/2)

	if m.state.Over && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.opts.FPS)
}

// saveRun records the finished run, best effort.
func (m *Model) saveRun() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveRun(storage.Run{
		Score:    m.state.Score,
		Distance: m.state.Distance,
		Sections: m.state.SectionsPassed,
		Struck:   m.state.Struck,
		Avoided:  m.state.Avoided,
		Duration: int(time.Since(m.startedAt).Seconds()),
	})
}

// View renders the track and HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderView(m.game, m.state, m.width, m.height, m.warn, m.saveNote)
}

// Run starts the Bubble Tea program for a local play session.
func Run(cfg config.Config, store *storage.Store, logger *log.Logger, opts Options) error {
	model, err := NewModel(cfg, store, logger, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
