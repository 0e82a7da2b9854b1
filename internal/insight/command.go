package insight

import "strings"

// CommandKind classifies a free-text chat message.
type CommandKind int

const (
	// CmdHelp is returned for anything unrecognized.
	CmdHelp CommandKind = iota
	// CmdOverview requests the whole-market dashboard.
	CmdOverview
	// CmdBrand requests a single-brand analysis ("brand analysis <name>").
	CmdBrand
	// CmdCompetitive requests a comparison
	// ("competitive analysis <a> vs <b>[, <c>...]").
	CmdCompetitive
)

// Command is a parsed chat message.
type Command struct {
	Kind        CommandKind
	Brand       string
	Competitors []string
}

// HelpMessage is the fixed reply for unrecognized chat input.
const HelpMessage = `I can help you with:
1. Market Overview - Get an overview of the entire market
2. Brand Analysis - Analyze a specific brand (e.g., "brand analysis BrandName")
3. Competitive Analysis - Compare brands (e.g., "competitive analysis BrandA vs BrandB, BrandC")`

// ParseChatMessage matches a chat message by substring, mirroring the chat
// UI's command surface. Brand names keep their original casing; resolution
// happens later.
func ParseChatMessage(text string) Command {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "competitive analysis"):
		rest := afterFold(text, "competitive analysis")
		parts := splitFold(rest, " vs ")
		if len(parts) < 2 {
			return Command{Kind: CmdHelp}
		}
		var competitors []string
		for _, c := range strings.Split(parts[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				competitors = append(competitors, c)
			}
		}
		name := strings.TrimSpace(parts[0])
		if name == "" || len(competitors) == 0 {
			return Command{Kind: CmdHelp}
		}
		return Command{Kind: CmdCompetitive, Brand: name, Competitors: competitors}

	case strings.Contains(lower, "brand analysis"):
		name := strings.TrimSpace(afterFold(text, "brand analysis"))
		if name == "" {
			return Command{Kind: CmdHelp}
		}
		return Command{Kind: CmdBrand, Brand: name}

	case strings.Contains(lower, "market overview"), strings.Contains(lower, "overview"):
		return Command{Kind: CmdOverview}

	default:
		return Command{Kind: CmdHelp}
	}
}

// afterFold returns the part of s following the first case-insensitive
// occurrence of marker.
func afterFold(s, marker string) string {
	idx := strings.Index(strings.ToLower(s), marker)
	if idx < 0 {
		return ""
	}
	return s[idx+len(marker):]
}

// splitFold splits s at the first case-insensitive occurrence of sep.
func splitFold(s, sep string) []string {
	idx := strings.Index(strings.ToLower(s), sep)
	if idx < 0 {
		return []string{s}
	}
	return []string{s[:idx], s[idx+len(sep):]}
}
