package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"frienddeck/internal/notify"
)

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("frienddeck"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.state.ShowHelp {
		b.WriteString(m.renderHelp())
		return m.styles.Main.Render(b.String())
	}

	switch m.state.ActiveTab {
	case TabFriends:
		b.WriteString(m.renderFriends())
	case TabRequests:
		b.WriteString(m.renderRequests())
	case TabSuggested:
		b.WriteString(m.renderSuggestions())
	case TabSearch:
		b.WriteString(m.renderSearch())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("1-4/tab: switch · j/k: move · enter: act · /: search · r: reload · ?: help · q: quit"))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, 4)
	for tab := TabFriends; tab <= TabSearch; tab++ {
		title := fmt.Sprintf("%d %s", int(tab)+1, tab.Title())
		if count := m.state.ItemCount(tab); count > 0 {
			title = fmt.Sprintf("%s (%d)", title, count)
		}
		if tab == m.state.ActiveTab {
			tabs = append(tabs, m.styles.TabActive.Render(title))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderFriends() string {
	if m.state.Loading {
		return m.styles.Dim.Render("Loading friends...")
	}
	if len(m.state.Friends) == 0 {
		return m.styles.Dim.Render("No friends yet. Try the Suggested tab.")
	}

	var b strings.Builder
	cursor := m.state.Cursor(TabFriends)
	for i, friend := range m.state.Friends {
		line := friend.Username
		if len(friend.Interests) > 0 {
			line += "  " + m.styles.Dim.Render(strings.Join(friend.Interests, ", "))
		}
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	if m.state.PendingUnfriend != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Confirm.Render(
			fmt.Sprintf("Unfriend %s? (y/n)", m.state.PendingUnfriend.Username)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRequests() string {
	if len(m.state.Requests) == 0 {
		return m.styles.Dim.Render("No pending friend requests.")
	}

	var b strings.Builder
	cursor := m.state.Cursor(TabRequests)
	for i, request := range m.state.Requests {
		line := request.Requester.Username + "  " +
			m.styles.StateIncoming.Render("wants to be friends") + "  " +
			m.styles.Dim.Render("enter to accept")
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSuggestions() string {
	if len(m.state.Recommendations) == 0 {
		return m.styles.Dim.Render("No suggestions right now.")
	}

	var b strings.Builder
	cursor := m.state.Cursor(TabSuggested)
	for i, rec := range m.state.Recommendations {
		line := rec.User.Username
		if m.config.UISettings.ShowMutualCounts {
			line += "  " + m.styles.Dim.Render(fmt.Sprintf(
				"%d mutual friends · %d shared interests",
				rec.MutualFriendCount, rec.MutualInterestCount))
		}
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.SearchPrompt.Render("Search: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.state.Searching:
		b.WriteString(m.styles.Dim.Render("Searching..."))
		b.WriteString("\n")
	case m.state.SearchTerm == "":
		b.WriteString(m.styles.Dim.Render("Type to search for users. esc leaves the input."))
		b.WriteString("\n")
	case len(m.state.SearchResults) == 0:
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("No users matching %q.", m.state.SearchTerm)))
		b.WriteString("\n")
	}

	cursor := m.state.Cursor(TabSearch)
	for i, result := range m.state.SearchResults {
		line := result.User.Username
		if label := StateLabel(result.Relationship); label != "" {
			line += "  " + m.styles.StateStyle(result.Relationship).Render("["+label+"]")
		}
		b.WriteString(m.renderRow(line, i == cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(line string, selected bool) string {
	if selected {
		return m.styles.SelectionBg.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) renderStatusBar() string {
	if m.state.Notice == nil {
		return ""
	}
	switch m.state.Notice.Kind {
	case notify.KindSuccess:
		return m.styles.NoticeSuccess.Render(m.state.Notice.Message)
	case notify.KindError:
		return m.styles.NoticeError.Render("Error: " + m.state.Notice.Message)
	default:
		return m.styles.NoticeInfo.Render(m.state.Notice.Message)
	}
}

func (m *Model) renderHelp() string {
	lines := []string{
		"Keys",
		"",
		"  1-4, tab     switch between Friends / Requests / Suggested / Search",
		"  j/k, arrows  move the selection",
		"  enter        act on the selected row:",
		"                 friends    remove (with confirmation)",
		"                 requests   accept",
		"                 suggested  send a friend request",
		"                 search     send or cancel a request, accept incoming",
		"  /            focus the search input",
		"  r            reload everything from the server",
		"  c            dismiss the status message",
		"  q, ctrl+c    quit",
		"",
		"esc or ? closes this help.",
	}
	return strings.Join(lines, "\n")
}
