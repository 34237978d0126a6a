package ruleset

import (
	"regexp"

	"github.com/selira/modguard/pkg/domain/moderation"
)

const (
	blockedMessage  = "Message blocked due to content policy violation"
	selfHarmMessage = "This message was blocked. If you're thinking about hurting yourself, " +
		"please reach out to a crisis line (988 in the US) or someone you trust."
)

// defaultRules is the versioned policy table, ordered most severe first.
// Evaluation stops at the first category with any pattern hit, so the order
// here is the enforcement priority. The patterns are deliberately biased
// toward false positives in the auto-ban categories: a missed detection
// costs more than an over-block.
var defaultRules = []Rule{
	{
		Category: moderation.CategoryMinorSexualContent,
		Severity: moderation.SeverityCritical,
		AutoBan:  true,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(child|kid|minor|young|underage|teen|preteen|loli|shota|cp)\b.*\b(porn|sex|nude|naked|explicit|nsfw|undress)`,
			`\b(sex|fuck|rape|molest|abuse|undress)\b.*\b(child|kid|minor|young|underage|teen|preteen)`,
			`\b(pedo|pedoph|child abuse|child sexual|csam|csem)\b`,
			`\b\d{1,2}\s*(year|yr)s?\s*old\b.*\b(sex|porn|nude|naked|fuck|undress)`,
		),
	},
	{
		Category: moderation.CategoryUnderageRoleplay,
		Severity: moderation.SeverityHigh,
		AutoBan:  false,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(pretend|imagine|act|roleplay|role-play)\b.*\byou\b.*\b(\d{1,2}\s*(year|yr)s?\s*old|underage|a (child|kid|minor|teenager)|little (girl|boy))`,
			`\byou are (a |my )?(child|kid|minor|teenager|little (girl|boy))\b`,
			`\b(act|talk|behave) like (a |an )?(child|kid|minor|schoolgirl|schoolboy)\b`,
		),
	},
	{
		Category: moderation.CategoryPromptInjection,
		Severity: moderation.SeverityMedium,
		AutoBan:  false,
		Message:  blockedMessage,
		Patterns: compile(
			`\bignore\b.*\b(previous|prior|above|earlier|your)\b.*\b(instruction|prompt|rule|restriction)`,
			`\b(disregard|forget|override|bypass)\b.*\b(instruction|guideline|restriction|rule|safety|filter)`,
			`\bremove all (restriction|filter|limit|rule)s?\b`,
			`\b(jailbreak|dan mode|developer mode|no filter mode)\b`,
			`\b(reveal|show|print|repeat)\b.*\bsystem prompt\b`,
		),
	},
	{
		Category: moderation.CategoryHumanTrafficking,
		Severity: moderation.SeverityCritical,
		AutoBan:  true,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(buy|sell|trade|purchase)\b.*\b(child|kid|slave|human|person|woman|girl|boy)\b`,
			`\b(trafficking|smuggl|enslave|forced labou?r)\b`,
		),
	},
	{
		Category: moderation.CategoryTerrorism,
		Severity: moderation.SeverityCritical,
		AutoBan:  false,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(bomb|terrorist|terrorism|mass murder|school shooting)\b`,
			`\bkill\b.*\bpeople\b`,
			`\b(make|build|construct)\b.*\b(bomb|explosive|weapon)\b`,
			`\b(suicide bomb|mass shooting|terrorist attack)\b`,
		),
	},
	{
		Category: moderation.CategoryIllegalDrugs,
		Severity: moderation.SeverityHigh,
		AutoBan:  false,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(make|manufacture|produce|cook|synthesize)\b.*\b(meth|methamphetamine|heroin|fentanyl|cocaine)\b`,
			`\b(sell|distribute|deal)\b.*\b(drugs|narcotics|meth|heroin|fentanyl)\b`,
		),
	},
	{
		Category:         moderation.CategorySelfHarm,
		Severity:         moderation.SeverityHigh,
		AutoBan:          false,
		Message:          selfHarmMessage,
		ProvideResources: true,
		Patterns: compile(
			`\b(kill myself|suicide|end my life|want to die)\b`,
			`\b(cut myself|self[- ]harm|hurt myself)\b`,
		),
	},
	{
		Category: moderation.CategoryIncest,
		Severity: moderation.SeverityCritical,
		AutoBan:  true,
		Message:  blockedMessage,
		Patterns: compile(
			`\b(my|your|his|her|their)\s+(mother|mom|father|dad|sister|brother|daughter|son|aunt|uncle|niece|nephew)\b.*\b(sex|fuck|naked|nude|undress|seduce|sleep with)`,
			`\b(sex|fuck|seduce)\b.*\b(my|your) (own )?(mother|mom|father|dad|sister|brother|daughter|son)\b`,
			`\bincest\b`,
		),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}
