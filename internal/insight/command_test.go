package insight_test

import (
	"reflect"
	"testing"

	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
)

func TestParseChatMessage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want insight.Command
	}{
		{
			"market overview",
			"show me a market overview please",
			insight.Command{Kind: insight.CmdOverview},
		},
		{
			"bare overview",
			"Overview",
			insight.Command{Kind: insight.CmdOverview},
		},
		{
			"brand analysis",
			"brand analysis Acme",
			insight.Command{Kind: insight.CmdBrand, Brand: "Acme"},
		},
		{
			"brand analysis keeps casing",
			"Brand Analysis SoundCore",
			insight.Command{Kind: insight.CmdBrand, Brand: "SoundCore"},
		},
		{
			"competitive analysis",
			"competitive analysis Acme vs Globex, Initech",
			insight.Command{Kind: insight.CmdCompetitive, Brand: "Acme", Competitors: []string{"Globex", "Initech"}},
		},
		{
			"competitive analysis case-insensitive vs",
			"Competitive Analysis Acme VS Globex",
			insight.Command{Kind: insight.CmdCompetitive, Brand: "Acme", Competitors: []string{"Globex"}},
		},
		{
			"competitive without vs falls back to help",
			"competitive analysis Acme",
			insight.Command{Kind: insight.CmdHelp},
		},
		{
			"brand analysis without a name",
			"brand analysis   ",
			insight.Command{Kind: insight.CmdHelp},
		},
		{
			"unrecognized",
			"what's the weather?",
			insight.Command{Kind: insight.CmdHelp},
		},
		{
			"empty",
			"",
			insight.Command{Kind: insight.CmdHelp},
		},
	}
	for _, c := range cases {
		if got := insight.ParseChatMessage(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: ParseChatMessage(%q) = %+v, want %+v", c.name, c.in, got, c.want)
		}
	}
}
