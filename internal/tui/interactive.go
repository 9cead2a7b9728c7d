// Package tui is the interactive terminal front end: a preset menu and
// a live ASCII view of the running simulation.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sway/internal/limb"
	"github.com/san-kum/sway/internal/scene"
	"github.com/san-kum/sway/internal/sim"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var sceneInfo = map[string]string{
	"snake":    "wandering segment chain",
	"crawler":  "four-legged walker",
	"starfish": "radial ik arms",
}

type state int

const (
	stateMenu state = iota
	stateSim
)

type model struct {
	state  state
	cursor int
	scenes []string

	simulator *sim.Simulator
	dt        float64
	speed     float64
	selected  string
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func NewInteractiveApp(dt float64) *model {
	return &model{
		state:  stateMenu,
		scenes: scene.PresetNames(),
		dt:     dt,
		speed:  1.0,
		width:  80,
		height: 24,
	}
}

// NewLiveApp skips the menu and opens the named preset directly.
func NewLiveApp(sceneName string, dt float64) *model {
	m := NewInteractiveApp(dt)
	m.selected = sceneName
	m.start()
	m.state = stateSim
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateSim {
		return tick()
	}
	return nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim || m.simulator == nil {
			return m, nil
		}
		if m.simulator.Playback() == sim.Playing {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now

			steps := int(m.speed)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps; i++ {
				if err := m.simulator.Step(m.dt); err != nil {
					m.simulator.Pause()
					break
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.scenes[m.cursor]
		m.start()
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "escape":
		m.simulator = nil
		m.state = stateMenu
		return m, tea.ClearScreen
	case " ", "p":
		m.simulator.TogglePlayback()
	case "s":
		m.simulator.Stop()
	case "r":
		m.start()
		return m, tea.ClearScreen
	case "+", "=":
		m.speed = math.Min(m.speed*2, 16)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

func (m *model) start() {
	data, err := scene.Preset(m.selected)
	if err != nil {
		return
	}

	s := sim.New(world.NewPlayground(vec.New(400, 300)))
	sets := make(map[world.Handle]*limb.Set)
	scene.Spawn(s.World(), sets, data)
	for body, set := range sets {
		s.LimbSets()[body] = set
	}
	s.Play()

	m.simulator = s
	m.speed = 1.0
	m.lastFrame = time.Time{}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("s w a y") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.scenes {
		desc := sceneInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	cw := m.width - 6
	ch := m.height - 8
	if cw < 50 {
		cw = 50
	}
	if ch < 12 {
		ch = 12
	}

	canvas := newCanvas(cw, ch)
	canvas.drawWorld(m.simulator)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render(m.simulator.Playback().String())
	switch m.simulator.Playback() {
	case sim.Paused:
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	case sim.Stopped:
		statusIcon = dim.Render("○")
		statusText = dim.Render("stopped")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.selected), statusText,
		dim.Render(fmt.Sprintf("t=%.1fs  %.0ffps  %gx", m.simulator.Elapsed(), m.fps, m.speed))))

	b.WriteString("\n")
	for _, row := range canvas.cells {
		b.WriteString("   " + string(row) + "\n")
	}

	w := m.simulator.World()
	limbs := 0
	for _, set := range m.simulator.LimbSets() {
		limbs += len(set.Limbs)
	}
	b.WriteString(fmt.Sprintf("\n   %s%s  %s%s  %s%s\n",
		dim.Render("nodes="), magenta.Render(fmt.Sprintf("%d", w.NodeCount())),
		dim.Render("constraints="), magenta.Render(fmt.Sprintf("%d", len(w.Constraints()))),
		dim.Render("limbs="), magenta.Render(fmt.Sprintf("%d", limbs))))
	b.WriteString(dim.Render("   space pause   s stop   r restart   +/- speed   esc menu   q quit") + "\n")

	return b.String()
}
