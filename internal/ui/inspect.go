package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/combo"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/recommend"
)

// InspectNode is one displayable row in the evaluation browser
type InspectNode struct {
	Label     string
	Detail    string
	Depth     int
	Expanded  bool
	Children  []*InspectNode
	Parent    *InspectNode
	IsSection bool
	Score     float64
	HasScore  bool
	Failed    bool
}

// InspectModel is the bubbletea model for browsing one evaluation
type InspectModel struct {
	ev         *engine.Evaluation
	nodes      []*InspectNode // Flattened list of visible nodes
	allNodes   []*InspectNode // Top-level sections
	cursor     int            // Currently selected node
	ready      bool
	width      int
	height     int
	showPassed bool // Toggle to show/hide passing rules
	showCombos bool // Toggle to show/hide the combo section
	keys       inspectKeyMap
	styles     inspectStyles
}

type inspectKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	TogglePassed key.Binding
	ToggleCombos key.Binding
	Quit         key.Binding
}

type inspectStyles struct {
	selected  lipgloss.Style
	section   lipgloss.Style
	label     lipgloss.Style
	good      lipgloss.Style
	middling  lipgloss.Style
	weak      lipgloss.Style
	tree      lipgloss.Style
	dim       lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultInspectKeyMap() inspectKeyMap {
	return inspectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		TogglePassed: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle passed rules"),
		),
		ToggleCombos: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle combos"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultInspectStyles() inspectStyles {
	return inspectStyles{
		selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true),
		section:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		good:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		middling:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		weak:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		tree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")).Padding(0, 0),
	}
}

// NewInspectModel creates an evaluation browser model
func NewInspectModel(ev *engine.Evaluation) InspectModel {
	m := InspectModel{
		ev:         ev,
		showPassed: true,
		showCombos: false,
		keys:       defaultInspectKeyMap(),
		styles:     defaultInspectStyles(),
	}

	m.buildNodes()
	return m
}

func section(label string, children ...*InspectNode) *InspectNode {
	node := &InspectNode{
		Label:     label,
		IsSection: true,
		Expanded:  true,
		Children:  children,
	}
	for _, c := range children {
		c.Parent = node
	}
	return node
}

func (n *InspectNode) add(child *InspectNode) *InspectNode {
	child.Parent = n
	child.Depth = n.Depth + 1
	n.Children = append(n.Children, child)
	return child
}

// buildNodes constructs the section tree from the evaluation
func (m *InspectModel) buildNodes() {
	m.allNodes = nil
	m.allNodes = append(m.allNodes, m.buildScores())
	m.allNodes = append(m.allNodes, m.buildElements())
	if fam := m.buildFamilies(); fam != nil {
		m.allNodes = append(m.allNodes, fam)
	}
	if m.showCombos {
		if combos := m.buildCombos(); combos != nil {
			m.allNodes = append(m.allNodes, combos)
		}
	}
	if recs := m.buildRecommendations(); recs != nil {
		m.allNodes = append(m.allNodes, recs)
	}
	m.allNodes = append(m.allNodes, m.buildProvenance())

	m.updateVisibleNodes()
}

func (m *InspectModel) buildScores() *InspectNode {
	node := section("scores")
	node.add(&InspectNode{Label: "ranking", Score: m.ev.RankingScore, HasScore: true})
	node.add(&InspectNode{Label: "conversion", Score: m.ev.ConversionScore, HasScore: true})
	if m.ev.KPIs != nil {
		node.add(&InspectNode{Label: "kpi overall", Score: m.ev.KPIs.Overall, HasScore: true})
	}
	return node
}

func (m *InspectModel) buildElements() *InspectNode {
	node := section("elements")
	for _, el := range []listing.Element{listing.ElementTitle, listing.ElementSubtitle, listing.ElementDescription} {
		res, ok := m.ev.Elements[el]
		if !ok {
			continue
		}
		elNode := node.add(&InspectNode{
			Label:    string(el),
			Score:    res.Score,
			HasScore: true,
			Expanded: false,
			Detail:   fmt.Sprintf("%d keywords, noise %.2f", len(res.Keywords), res.NoiseRatio),
		})
		for _, rr := range res.Results {
			if rr.Passed && !m.showPassed {
				continue
			}
			detail := fmt.Sprintf("weight %.2f, scope %s", rr.Weight, rr.Ancestry)
			if rr.Message != "" {
				detail += ", " + rr.Message
			}
			elNode.add(&InspectNode{
				Label:    rr.RuleID,
				Score:    rr.Score,
				HasScore: true,
				Failed:   !rr.Passed,
				Detail:   detail,
			})
		}
	}
	return node
}

func (m *InspectModel) buildFamilies() *InspectNode {
	if m.ev.KPIs == nil || len(m.ev.KPIs.Families) == 0 {
		return nil
	}
	ids := make([]string, 0, len(m.ev.KPIs.Families))
	for id := range m.ev.KPIs.Families {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	node := section("kpi families")
	for _, id := range ids {
		fam := m.ev.KPIs.Families[id]
		famNode := node.add(&InspectNode{
			Label:    id,
			Score:    fam.Score,
			HasScore: true,
			Expanded: false,
		})
		for _, kid := range fam.KPIIDs {
			k, ok := m.ev.KPIs.KPIs[kid]
			if !ok {
				continue
			}
			famNode.add(&InspectNode{
				Label:    kid,
				Score:    k.Normalized,
				HasScore: true,
				Detail:   fmt.Sprintf("raw %.2f, normalized %.1f", k.Raw, k.Normalized),
			})
		}
	}
	return node
}

func (m *InspectModel) buildCombos() *InspectNode {
	set := m.ev.Combos
	if set == nil || len(set.All) == 0 {
		return nil
	}
	node := section("combos")
	groups := []struct {
		label  string
		combos []*combo.Combo
	}{
		{"cross", set.Cross},
		{"title only", set.TitleOnly},
		{"subtitle incremental", set.SubtitleIncremental},
		{"low value", set.LowValue},
	}
	for _, g := range groups {
		if len(g.combos) == 0 {
			continue
		}
		groupNode := node.add(&InspectNode{
			Label:    fmt.Sprintf("%s (%d)", g.label, len(g.combos)),
			Expanded: false,
		})
		for _, c := range g.combos {
			detail := fmt.Sprintf("type %s, relevance %.2f", c.Type, c.Relevance)
			if c.Intent != "" {
				detail += ", intent " + c.Intent
			}
			if c.Competitor != "" {
				detail += ", competitor " + c.Competitor
			}
			groupNode.add(&InspectNode{Label: c.Text, Detail: detail})
		}
	}
	return node
}

func (m *InspectModel) buildRecommendations() *InspectNode {
	lists := m.ev.Recommendations
	if len(lists.Ranking) == 0 && len(lists.Conversion) == 0 {
		return nil
	}
	node := section("recommendations")
	addList := func(label string, recs []recommend.Recommendation) {
		if len(recs) == 0 {
			return
		}
		listNode := node.add(&InspectNode{Label: label, Expanded: true})
		for _, rec := range recs {
			listNode.add(&InspectNode{
				Label:  rec.Message,
				Failed: rec.Severity >= recommend.Strong,
				Detail: fmt.Sprintf("%s, %s, impact %d", rec.ID, rec.Severity, rec.Impact),
			})
		}
	}
	addList("ranking", lists.Ranking)
	addList("conversion", lists.Conversion)
	return node
}

func (m *InspectModel) buildProvenance() *InspectNode {
	node := section("provenance")
	chain := m.ev.Provenance.Chain
	parts := []string{}
	if chain.Base {
		parts = append(parts, "base")
	}
	if chain.Vertical != "" {
		parts = append(parts, "vertical:"+chain.Vertical)
	}
	if chain.Market != "" {
		parts = append(parts, "market:"+chain.Market)
	}
	if chain.Client != "" {
		parts = append(parts, "client:"+chain.Client)
	}
	node.add(&InspectNode{Label: strings.Join(parts, " > ")})

	for _, warn := range m.ev.Provenance.Warnings {
		node.add(&InspectNode{Label: warn, Failed: true})
	}

	if len(m.ev.Provenance.Ancestry) > 0 {
		keys := make([]string, 0, len(m.ev.Provenance.Ancestry))
		for k := range m.ev.Provenance.Ancestry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ancNode := node.add(&InspectNode{
			Label:    fmt.Sprintf("ancestry (%d keys)", len(keys)),
			Expanded: false,
		})
		for _, k := range keys {
			ancNode.add(&InspectNode{
				Label:  k,
				Detail: fmt.Sprintf("decided by %s", m.ev.Provenance.Ancestry[k]),
			})
		}
	}
	return node
}

func (m *InspectModel) updateVisibleNodes() {
	m.nodes = nil
	for _, node := range m.allNodes {
		m.collectVisible(node)
	}

	// Clamp cursor
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *InspectModel) collectVisible(node *InspectNode) {
	m.nodes = append(m.nodes, node)

	if node.Expanded {
		for _, child := range node.Children {
			m.collectVisible(child)
		}
	}
}

// Init initializes the model
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = !m.nodes[m.cursor].Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.TogglePassed):
			m.showPassed = !m.showPassed
			m.buildNodes()

		case key.Matches(msg, m.keys.ToggleCombos):
			m.showCombos = !m.showCombos
			m.buildNodes()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

// View renders the browser
func (m InspectModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Reserve space for footer (detail + help + padding)
	footerHeight := 4
	treeHeight := m.height - footerHeight
	if treeHeight < 5 {
		treeHeight = 5
	}

	var sb strings.Builder

	// Tree view
	treeContent := m.renderTree()
	lines := strings.Split(strings.TrimSuffix(treeContent, "\n"), "\n")

	// Scroll to keep cursor visible
	startIdx := 0
	if m.cursor >= treeHeight {
		startIdx = m.cursor - treeHeight + 1
	}

	endIdx := startIdx + treeHeight
	if endIdx > len(lines) {
		endIdx = len(lines)
	}

	// Render visible tree lines
	if startIdx < len(lines) {
		visibleLines := lines[startIdx:endIdx]
		sb.WriteString(strings.Join(visibleLines, "\n"))
	}

	// Pad tree area to maintain consistent height
	renderedLines := 0
	if endIdx > startIdx {
		renderedLines = endIdx - startIdx
	}
	for i := renderedLines; i < treeHeight; i++ {
		sb.WriteString("\n")
	}

	// Footer section
	sb.WriteString("\n")

	// Status bar with detail info (single line)
	if len(m.nodes) > 0 && m.cursor < len(m.nodes) {
		detail := m.renderDetailLine(m.nodes[m.cursor])
		sb.WriteString(m.styles.statusBar.Width(m.width).Render(detail))
	} else {
		sb.WriteString(m.styles.statusBar.Width(m.width).Render(""))
	}
	sb.WriteString("\n")

	// Help bar
	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  p passed(%s)  c combos(%s)  q quit",
		boolToOnOff(m.showPassed),
		boolToOnOff(m.showCombos),
	)
	sb.WriteString(m.styles.helpBar.Width(m.width).Render(help))

	return sb.String()
}

func (m *InspectModel) renderTree() string {
	var sb strings.Builder

	for i, node := range m.nodes {
		line := m.renderNode(node, i == m.cursor)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *InspectModel) renderNode(node *InspectNode, selected bool) string {
	var sb strings.Builder

	// Indentation
	indent := strings.Repeat("  ", node.Depth)
	sb.WriteString(m.styles.tree.Render(indent))

	// Tree connector
	connector := "├─ "
	if node.Parent != nil {
		isLast := true
		for i, sibling := range node.Parent.Children {
			if sibling == node && i < len(node.Parent.Children)-1 {
				isLast = false
				break
			}
		}
		if isLast {
			connector = "└─ "
		}
	} else {
		connector = ""
	}
	sb.WriteString(m.styles.tree.Render(connector))

	// Expand/collapse indicator
	if len(node.Children) > 0 {
		if node.Expanded {
			sb.WriteString(m.styles.dim.Render("▼ "))
		} else {
			sb.WriteString(m.styles.dim.Render("▶ "))
		}
	} else {
		sb.WriteString("  ")
	}

	// Content
	var content string
	switch {
	case node.IsSection:
		content = m.styles.section.Render(node.Label)
	case node.HasScore:
		content = m.styles.label.Render(node.Label) + " " + m.scoreStyle(node.Score).Render(fmt.Sprintf("%.1f", node.Score))
	case node.Failed:
		content = m.styles.weak.Render(node.Label)
	default:
		content = m.styles.label.Render(node.Label)
	}

	if selected {
		content = m.styles.selected.Render(content)
	}
	sb.WriteString(content)

	return sb.String()
}

func (m *InspectModel) scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return m.styles.good
	case score >= 40:
		return m.styles.middling
	default:
		return m.styles.weak
	}
}

func (m *InspectModel) renderDetailLine(node *InspectNode) string {
	if node.Detail != "" {
		return " " + node.Detail
	}
	if node.IsSection {
		return fmt.Sprintf(" %s: %d entries", node.Label, len(node.Children))
	}
	return " " + node.Label
}

func boolToOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
