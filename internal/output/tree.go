package output

import (
	"fmt"
	"strings"
	"time"

	"repolens.dev/repolens/internal/git"
)

// Tree connector symbols
const (
	branchSymbol = "◉"
	teeSymbol    = "├─"
	elbowSymbol  = "└─"
)

// StatusTreeRenderer renders the repository state as a tree: the current
// branch at the root, file buckets and unpushed commits as subtrees.
type StatusTreeRenderer struct {
	status   *git.Status
	unpushed []git.Commit
	color    bool
	now      func() time.Time
}

// NewStatusTreeRenderer creates a renderer for the given snapshot
func NewStatusTreeRenderer(status *git.Status, unpushed []git.Commit) *StatusTreeRenderer {
	return &StatusTreeRenderer{
		status:   status,
		unpushed: unpushed,
		color:    ColorEnabled(),
		now:      time.Now,
	}
}

// SetColor overrides terminal color detection, mainly for tests
func (r *StatusTreeRenderer) SetColor(enabled bool) {
	r.color = enabled
}

type section struct {
	label string
	items []string
	style func(...string) string
}

// Render returns the full tree as a string, trailing newline included
func (r *StatusTreeRenderer) Render() string {
	var b strings.Builder

	header := branchSymbol + " " + r.styled(branchStyle.Render, r.status.CurrentBranch)
	if r.status.TrackingRef != "" {
		header += " " + r.styled(trackingStyle.Render, "→ "+r.status.TrackingRef)
		if r.status.Ahead > 0 || r.status.Behind > 0 {
			header += r.styled(dimStyle.Render,
				fmt.Sprintf(" [ahead %d, behind %d]", r.status.Ahead, r.status.Behind))
		}
	}
	b.WriteString(header + "\n")

	sections := r.sections()
	for i, sec := range sections {
		last := i == len(sections)-1
		r.renderSection(&b, sec, last)
	}

	return b.String()
}

func (r *StatusTreeRenderer) sections() []section {
	var sections []section

	add := func(label string, items []string, style func(...string) string) {
		if len(items) > 0 {
			sections = append(sections, section{label: label, items: items, style: style})
		}
	}

	add("staged", r.status.Staged, stagedStyle.Render)
	add("modified", r.status.Modified, modifiedStyle.Render)
	add("untracked", r.status.Untracked, untrackedStyle.Render)
	add("deleted", r.status.Deleted, deletedStyle.Render)

	if len(r.status.Renamed) > 0 {
		items := make([]string, 0, len(r.status.Renamed))
		for _, ren := range r.status.Renamed {
			items = append(items, ren.From+" -> "+ren.To)
		}
		add("renamed", items, stagedStyle.Render)
	}

	if len(r.unpushed) > 0 {
		items := make([]string, 0, len(r.unpushed))
		for _, commit := range r.unpushed {
			items = append(items, fmt.Sprintf("%s %s %s",
				r.styled(hashStyle.Render, commit.ShortHash),
				commit.Subject,
				r.styled(dimStyle.Render, "("+r.relativeTime(commit.AuthorDate)+")")))
		}
		sections = append(sections, section{label: "unpushed", items: items, style: nil})
	}

	if len(sections) == 0 {
		sections = append(sections, section{
			label: "clean",
			items: []string{r.styled(dimStyle.Render, "nothing to commit, working tree clean")},
		})
	}

	return sections
}

func (r *StatusTreeRenderer) renderSection(b *strings.Builder, sec section, last bool) {
	connector := teeSymbol
	childIndent := "│  "
	if last {
		connector = elbowSymbol
		childIndent = "   "
	}

	fmt.Fprintf(b, "%s %s\n", connector, sec.label)
	for i, item := range sec.items {
		itemConnector := teeSymbol
		if i == len(sec.items)-1 {
			itemConnector = elbowSymbol
		}
		rendered := item
		if sec.style != nil {
			rendered = r.styled(sec.style, item)
		}
		fmt.Fprintf(b, "%s%s %s\n", childIndent, itemConnector, rendered)
	}
}

func (r *StatusTreeRenderer) styled(style func(...string) string, text string) string {
	if !r.color {
		return text
	}
	return style(text)
}

// relativeTime formats a timestamp as a short human-readable age
func (r *StatusTreeRenderer) relativeTime(t time.Time) string {
	d := r.now().Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
