package launcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minepkg/assetguard/internals/assetguard"
	"github.com/minepkg/assetguard/internals/cmdlog"
)

var (
	stageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

type tickMsg time.Time

type resultMsg assetguard.Result

type progressModel struct {
	l        *Launcher
	serverID string
	ctx      context.Context
	cancel   context.CancelFunc
	width    int
	spinner  spinner.Model
	progress progress.Model
	result   *assetguard.Result
	aborted  bool
}

func newProgressModel(ctx context.Context, l *Launcher, serverID string) progressModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	ctx, cancel := context.WithCancel(ctx)
	return progressModel{
		l:        l,
		serverID: serverID,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  s,
		progress: p,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(spinner.Tick, m.tick(), m.run)
}

func (m progressModel) run() tea.Msg {
	return resultMsg(m.l.engine.ValidateEverything(m.ctx, m.serverID))
}

func (m progressModel) tick() tea.Cmd {
	return tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m progressModel) percent() float64 {
	p := m.l.engine.Progress()
	expected := p.Expected()
	if expected <= 0 {
		return 0
	}
	return float64(p.Received()) / float64(expected)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			m.cancel()
			return m, nil
		}
	case resultMsg:
		res := assetguard.Result(msg)
		m.result = &res
		m.cancel()
		return m, tea.Quit
	case tickMsg:
		return m, tea.Batch(m.tick(), m.progress.SetPercent(m.percent()))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.result != nil {
		return ""
	}
	stage, assetsDone, assetsTotal := m.l.state.snapshot()
	p := m.l.engine.Progress()

	var info string
	switch {
	case m.aborted:
		info = subtleStyle.Render("aborting …")
	case p.Expected() > 0:
		info = fmt.Sprintf(" %s / %s", cmdlog.HumanBytes(p.Received()), cmdlog.HumanBytes(p.Expected()))
	case stage == "version" && assetsTotal > 0:
		info = subtleStyle.Render(fmt.Sprintf(" assets %d/%d", assetsDone, assetsTotal))
	}

	label := "validating"
	if stage != "" {
		label = "validated " + stage
	}
	if p.Expected() > 0 {
		label = "downloading"
	}

	spin := m.spinner.View() + " " + stageStyle.Render(label)
	prog := m.progress.View()
	gap := strings.Repeat(" ", max(1, m.width-lipgloss.Width(spin+prog+info)))
	return spin + gap + prog + info
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// runProgressView runs ValidateEverything while rendering a progress bar
func (l *Launcher) runProgressView(ctx context.Context, serverID string) (assetguard.Result, error) {
	model := newProgressModel(ctx, l, serverID)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		model.cancel()
		return assetguard.Result{}, err
	}
	m := final.(progressModel)
	if m.result == nil {
		return assetguard.Result{}, context.Canceled
	}
	return *m.result, nil
}
