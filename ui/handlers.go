package ui

import (
	"html/template"
	"net/http"

	"pharmabrand/domain/strategy"
	"pharmabrand/internal/errors"
	"pharmabrand/internal/insights"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

// wizardView is everything the wizard page needs for one render. Every
// request recomputes it top to bottom; downstream options are never
// carried over from a previous render.
type wizardView struct {
	Selection strategy.Selection
	Stage     strategy.Stage

	RoleOptions      []string
	LifecycleOptions []string
	JourneyOptions   []string
	DiseaseOptions   []string

	ShowImperatives   bool
	ImperativeOptions []string
	ImperativeNotice  string

	ShowDifferentiators   bool
	DifferentiatorOptions []string

	ShowActions bool
	MaxPicks    int

	HasResults bool
	Results    []resultView

	Coverage    insights.Coverage
	HasCoverage bool
}

// resultView is one generated recommendation prepared for display, with
// sentinel substitution already applied.
type resultView struct {
	Imperative  string
	Tactic      string
	Notice      string
	Description template.HTML
	Cost        string
	Timeframe   string
}

func (s *Server) handleLoginPage(c *gin.Context) {
	s.renderTemplate(c, "login.html", nil)
}

// handleLoginSubmit simulates login: any submission grants access.
func (s *Server) handleLoginSubmit(c *gin.Context) {
	sess := s.sessions.Current(c)
	sess.LoggedIn = true
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleWizard(c *gin.Context) {
	sess := s.sessions.Current(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	s.renderWizard(c, sess, nil)
}

// handleCriteria records the step-1 dropdown choices.
func (s *Server) handleCriteria(c *gin.Context) {
	sess := s.sessions.Current(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	sess.Selection.SetCriteria(
		c.PostForm("role"),
		c.PostForm("lifecycle"),
		c.PostForm("journey"),
		c.PostForm("disease"),
	)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleImperatives records the step-2 picks, restricted to the options
// the current criteria actually offer.
func (s *Server) handleImperatives(c *gin.Context) {
	sess := s.sessions.Current(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	offered, err := s.service.Imperatives(c.Request.Context(), sess.Selection)
	if err != nil {
		offered = nil
	}
	sess.Selection.SetImperatives(c.PostFormArray("imperative"), offered)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleDifferentiators records the step-3 picks.
func (s *Server) handleDifferentiators(c *gin.Context) {
	sess := s.sessions.Current(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	offered, err := s.service.Differentiators(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	sess.Selection.SetDifferentiators(c.PostFormArray("differentiator"), offered)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleGenerate runs the generation pass and renders the wizard with
// the results inline. The session stays at ActionReady afterwards.
func (s *Server) handleGenerate(c *gin.Context) {
	sess := s.sessions.Current(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if sess.Selection.Stage() != strategy.StageActionReady {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	items, err := s.service.GeneratePlan(c.Request.Context(), sess.Selection)
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderWizard(c, sess, items)
}

// renderWizard recomputes the full page for the session's current
// stage. Load and sheet-schema errors abort the render fail-fast;
// a filter schema mismatch shows an empty step 2 with a notice.
func (s *Server) renderWizard(c *gin.Context, sess *Session, items []strategy.PlanItem) {
	ctx := c.Request.Context()

	axes, err := s.service.Axes(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}

	sel := sess.Selection
	view := wizardView{
		Selection:        sel,
		Stage:            sel.Stage(),
		RoleOptions:      append([]string{strategy.RolePlaceholder}, axes.Roles...),
		LifecycleOptions: append([]string{strategy.LifecyclePlaceholder}, axes.Lifecycles...),
		JourneyOptions:   append([]string{strategy.JourneyPlaceholder}, axes.Journeys...),
		DiseaseOptions:   append([]string{strategy.DiseasePlaceholder}, strategy.DiseaseStates...),
		MaxPicks:         strategy.MaxSelections,
	}

	if sel.CriteriaComplete() {
		view.ShowImperatives = true
		options, err := s.service.Imperatives(ctx, sel)
		switch {
		case errors.IsSchemaMismatch(err):
			view.ImperativeNotice = "The workbook's columns do not match the expected names for filtering."
		case err != nil:
			s.renderError(c, err)
			return
		case len(options) == 0:
			view.ImperativeNotice = "No strategic imperatives found for these selections. Please try different options."
		default:
			view.ImperativeOptions = options
		}
	}

	if view.Stage >= strategy.StageDifferentiators {
		diffs, err := s.service.Differentiators(ctx)
		if err != nil {
			s.renderError(c, err)
			return
		}
		view.ShowDifferentiators = true
		view.DifferentiatorOptions = diffs
	}

	view.ShowActions = view.Stage >= strategy.StageActionReady

	if cov, err := s.service.Coverage(ctx); err == nil {
		view.Coverage = cov
		view.HasCoverage = true
	}

	if len(items) > 0 {
		view.HasResults = true
		for _, item := range items {
			view.Results = append(view.Results, newResultView(item))
		}
	}

	s.renderTemplate(c, "index.html", view)
}

// newResultView applies the display-time sentinel substitution and
// renders the description markdown.
func newResultView(item strategy.PlanItem) resultView {
	view := resultView{
		Imperative: item.Imperative,
		Tactic:     item.Tactic,
		Notice:     item.Notice,
	}
	if item.Tactic == "" {
		// No tactic row matched; the notice is the whole result.
		return view
	}
	narrative := item.Narrative.WithDefaults()
	view.Description = template.HTML(markdown.ToHTML([]byte(narrative.Description), nil, nil))
	view.Cost = narrative.Cost
	view.Timeframe = narrative.Timeframe
	return view
}

// renderError shows the fail-fast notice page; nothing below the error
// is rendered.
func (s *Server) renderError(c *gin.Context, err error) {
	s.renderTemplate(c, "error.html", gin.H{"Notice": err.Error()})
}
