package debugger

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// frontendModel is the bubbletea model driving the debugger TUI. It talks
// to a Backend exclusively through Send/responses rather than touching
// the emulator directly, unlike the teacher's debugger.go which stepped
// its Cpu in-process.
type frontendModel struct {
	backend   *Backend
	responses <-chan Response

	lastInstruction string
	lastMessage     string
	page            []byte
	pageAddr        uint16

	quit bool
}

// Frontend runs the bubbletea TUI until the user quits or ctx is
// cancelled. Replacing the reference frontend's process-wide Ctrl-C
// pointer, cancellation flows in through ctx instead.
func Frontend(ctx context.Context, backend *Backend, responses <-chan Response) error {
	m := frontendModel{backend: backend, responses: responses}
	p := tea.NewProgram(m)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}

func (m frontendModel) Init() tea.Cmd {
	return m.waitForResponse
}

func (m frontendModel) waitForResponse() tea.Msg {
	r, ok := <-m.responses
	if !ok {
		return nil
	}
	return r
}

func (m frontendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case " ", "j":
			m.backend.Send(Cmd{Kind: cmdStep, Count: 1})
		case "c":
			m.backend.Send(Cmd{Kind: cmdContinue})
		case "r":
			m.backend.Send(Cmd{Kind: cmdRestart})
		case "p":
			m.backend.Send(Cmd{Kind: cmdRequestPage, Page: byte(m.pageAddr >> 8)})
		}
		return m, m.waitForResponse

	case Response:
		switch msg.Kind {
		case respInstruction:
			m.lastInstruction = msg.Text
		case respMessage:
			m.lastMessage = msg.Text
		case respPage:
			m.page = msg.PageData
			m.pageAddr = msg.Address
		}
		return m, m.waitForResponse
	}
	return m, nil
}

func (m frontendModel) View() string {
	if m.quit {
		return ""
	}

	status := panelStyle.Render(fmt.Sprintf(
		"last instruction: %s\nmessage: %s\n\nspew:\n%s",
		m.lastInstruction, m.lastMessage, spew.Sdump(m.lastInstruction),
	))

	page := panelStyle.Render(renderPage(m.pageAddr, m.page))

	return lipgloss.JoinVertical(lipgloss.Left, status, page,
		"space/j: step  c: continue  r: restart  p: page  q: quit")
}

func renderPage(addr uint16, data []byte) string {
	if len(data) == 0 {
		return "(no page requested)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "page %#04x\n", addr)
	for row := 0; row < len(data); row += 16 {
		fmt.Fprintf(&b, "%04x  ", int(addr)+row)
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		for _, v := range data[row:end] {
			fmt.Fprintf(&b, "%02x ", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
