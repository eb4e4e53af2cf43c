package readme

import (
	"fmt"
	"strings"

	"github.com/futig/readme-backend/internal/entity"
)

// BulletPrefix starts every feature and technology line in the synthesis prompt.
const BulletPrefix = "- "

// ReadmeSections lists the sections the generated document must contain, in order.
var ReadmeSections = []string{
	"Project title",
	"Description",
	"Features",
	"Installation instructions",
	"Usage instructions",
	"Technologies used",
	"License section",
}

const rewritePersona = "You are an expert technical writer."

// RewriteRules constrain the description rewrite. The model must keep the meaning
// and must not wrap its answer in commentary.
var RewriteRules = []string{
	"Rewrite the following project description so it is clear, professional, and engaging.",
	"Maintain the original meaning but improve grammar, flow, and conciseness.",
	"Avoid marketing buzzwords, filler phrases, and unnecessary adjectives.",
	"Return only the rewritten description, without explanations or extra formatting.",
}

const readmePersona = "You are an expert open-source documentation writer."

const readmeTask = "Generate a complete, professional README.md file in valid Markdown format for the following project:"

// OutputRules keep the generated Markdown tight and unwrapped.
var OutputRules = []string{
	"Keep formatting tight: do not add extra blank lines between headings, lists, or code blocks.",
	"Use single blank lines only where Markdown requires them (e.g., between headings and paragraphs or before/after code blocks).",
	"Do not wrap the output in triple backticks.",
	"Include code fences only for actual code blocks (bash commands or code snippets).",
	"Return only raw Markdown content, no explanations or commentary.",
}

// FormattingRules describe heading, list and code block syntax.
var FormattingRules = []string{
	"Use proper headings (#, ##), bullet points (-), and numbered lists (1., 2., 3.).",
	"Keep code blocks indented properly under list items.",
	"Avoid extra blank lines anywhere.",
}

// BulletList renders one "- item" line per entry. An empty list renders as "".
func BulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, BulletPrefix+item)
	}
	return strings.Join(lines, "\n")
}

func writeRules(sb *strings.Builder, rules []string) {
	for _, r := range rules {
		sb.WriteString(BulletPrefix)
		sb.WriteString(r)
		sb.WriteString("\n")
	}
}

// BuildRewritePrompt asks for a plain rewrite of the raw description.
func BuildRewritePrompt(description string) string {
	var sb strings.Builder

	sb.WriteString(rewritePersona)
	sb.WriteString("\n")
	for _, r := range RewriteRules {
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	sb.WriteString("\nOriginal description:\n")
	fmt.Fprintf(&sb, "\"%s\"\n", description)

	return sb.String()
}

// BuildReadmePrompt asks for the full README. pc.Description must already be polished.
func BuildReadmePrompt(pc entity.PromptContext) string {
	license := strings.TrimSpace(pc.License)
	if license == "" {
		license = entity.DefaultLicense
	}

	var sb strings.Builder

	sb.WriteString(readmePersona)
	sb.WriteString("\n")
	sb.WriteString(readmeTask)
	sb.WriteString("\n")
	writeRules(&sb, OutputRules)

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Project Name: %s\n", pc.ProjectName)
	fmt.Fprintf(&sb, "Description: %s\n", pc.Description)
	sb.WriteString("Features:\n")
	if len(pc.Features) > 0 {
		sb.WriteString(BulletList(pc.Features))
		sb.WriteString("\n")
	}
	sb.WriteString("Technologies:\n")
	if len(pc.Technologies) > 0 {
		sb.WriteString(BulletList(pc.Technologies))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "License: %s\n", license)

	sb.WriteString("\nThe README must include:\n")
	writeRules(&sb, ReadmeSections)

	sb.WriteString("\nFormatting details:\n")
	writeRules(&sb, FormattingRules)

	return sb.String()
}
