// Package views renders the single practice page from an embedded
// template. It only reads state; all mutation happens in the controller.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	appI18n "github.com/albertyip/dsedrill/internal/i18n"
	"github.com/albertyip/dsedrill/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Labels holds the localized UI chrome strings for one render.
type Labels struct {
	Title             string
	Subtitle          string
	SidebarHeader     string
	SectionLabel      string
	SectionHelp       string
	TopicLabel        string
	TopicHelp         string
	GenerateButton    string
	CurrentPractice   string
	QuestionHeading   string
	AnswerHeading     string
	AnswerPlaceholder string
	HintButton        string
	SolutionButton    string
	HintHeading       string
	SolutionHeading   string
	WelcomeHeading    string
	WelcomeBody       string
	Footer            string
}

// PageData is everything the index template needs for one render: the
// selection enumerations, the session state snapshot, and an optional
// error banner.
type PageData struct {
	Labels          Labels
	Sections        []model.SectionInfo
	Topics          []string
	SelectedSection model.Section
	SelectedTopic   string
	State           *model.SessionState
	ErrorMsg        string
}

// NewPageData assembles a PageData for the given state, localizing all
// chrome strings from the request context.
func NewPageData(ctx context.Context, state *model.SessionState, selectedSection model.Section, selectedTopic string, errorMsg string) PageData {
	labels := Labels{
		Title:             appI18n.T(ctx, "app_title"),
		Subtitle:          appI18n.T(ctx, "app_subtitle"),
		SidebarHeader:     appI18n.T(ctx, "sidebar_header"),
		SectionLabel:      appI18n.T(ctx, "section_label"),
		SectionHelp:       appI18n.T(ctx, "section_help"),
		TopicLabel:        appI18n.T(ctx, "topic_label"),
		TopicHelp:         appI18n.T(ctx, "topic_help"),
		GenerateButton:    appI18n.T(ctx, "generate_button"),
		QuestionHeading:   appI18n.T(ctx, "question_heading"),
		AnswerHeading:     appI18n.T(ctx, "answer_heading"),
		AnswerPlaceholder: appI18n.T(ctx, "answer_placeholder"),
		HintButton:        appI18n.T(ctx, "hint_button"),
		SolutionButton:    appI18n.T(ctx, "solution_button"),
		HintHeading:       appI18n.T(ctx, "hint_heading"),
		SolutionHeading:   appI18n.T(ctx, "solution_heading"),
		WelcomeHeading:    appI18n.T(ctx, "welcome_heading"),
		WelcomeBody:       appI18n.T(ctx, "welcome_body"),
		Footer:            appI18n.T(ctx, "footer"),
	}

	if state.HasResult() {
		labels.CurrentPractice = appI18n.Td(ctx, "current_practice", map[string]any{
			"Section": state.DisplaySection,
			"Topic":   state.DisplayTopic,
		})
	}

	return PageData{
		Labels:          labels,
		Sections:        model.Sections,
		Topics:          model.Topics,
		SelectedSection: selectedSection,
		SelectedTopic:   selectedTopic,
		State:           state,
		ErrorMsg:        errorMsg,
	}
}

// IndexPage writes the rendered practice page.
func IndexPage(w io.Writer, data PageData) error {
	if err := indexTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render index page: %w", err)
	}
	return nil
}
