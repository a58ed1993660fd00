package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/tui/view"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	body := view.PlaceBox(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderCard(), m.styles.colorBg)
	base := header + "\n" + body + "\n" + footer

	if m.selector.IsOpen() {
		return view.RenderOverlay(base, m.renderPicker(), m.width, m.height, m.styles.colorCard)
	}
	return base
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("moments")
	lang := m.styles.LanguageStyle.Render(language.Flag(m.selector.CurrentCountry().Code) + " " + language.DisplayName(m.selector.Selected()))
	line := title + lang
	if m.state.Loading() {
		line += m.styles.SpinnerStyle.Render(" " + m.spinner.View())
	}
	return view.PlaceBox(m.width, 1, lipgloss.Left, lipgloss.Top, line, m.styles.colorBg)
}

func (m Model) renderCard() string {
	lastErr := ""
	if m.state.Status == wordfetch.StatusError {
		lastErr = m.state.LastError
	}
	return view.RenderCard(view.CardModel{
		Width:     min(m.width-4, cardMaxWidth),
		Record:    m.state.Word,
		Loading:   m.state.Loading(),
		Spinner:   m.spinner.View(),
		UpdatedAt: m.state.LastFetch,
		LastError: lastErr,
		Styles:    m.styles.Card,
	})
}

func (m Model) renderPicker() string {
	model := view.PickerModel{
		Cursor:  m.cursor,
		Width:   min(pickerWidth, m.width),
		MaxRows: pickerMaxRows,
		Help:    m.help.ShortHelpView(m.keys.pickerHelp(m.selector.View())),
		Styles:  m.styles.Picker,
	}

	switch m.selector.View() {
	case language.ViewLanguages:
		pending, _ := m.selector.Pending()
		model.Title = "Languages in " + pending.Name
		for _, l := range m.selector.Options() {
			model.Rows = append(model.Rows, view.PickerRow{
				Label:  l.Name,
				Marked: l.Code == m.selector.Selected(),
			})
		}
	default:
		model.Title = "Select Country"
		for _, c := range m.selector.Countries() {
			model.Rows = append(model.Rows, view.PickerRow{
				Label:  language.Flag(c.Code) + " " + c.Name,
				Detail: view.LanguageCount(len(c.Languages)),
			})
		}
	}

	return view.RenderPicker(model)
}

func (m Model) renderFooter() string {
	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.StatusErrorStyle
	}
	return view.RenderFooter(view.FooterModel{
		Width:       m.width,
		StatusText:  m.statusMsg,
		StatusStyle: statusStyle,
		HelpText:    m.help.ShortHelpView(m.keys.normalHelp()),
		HelpStyle:   m.styles.HelpStyle,
	})
}
