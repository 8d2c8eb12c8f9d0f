// Package taxonomy defines the fixed twelve-section review structure,
// the category-to-section affinity rules, and per-section style profiles.
// All of it is data: extending a vocabulary or re-weighting an affinity
// never requires touching allocator or renderer code.
package taxonomy

// Section groups, in rendering order.
const (
	GroupObjectives    = "Objectives"
	GroupCompetencies  = "Competencies"
	GroupOpenQuestions = "Open Questions"
)

// StyleProfile captures the authorial rules for one section. The renderer
// passes it to the narrative generation capability; it never branches on it.
type StyleProfile struct {
	Tone      string   `json:"tone"`
	Structure string   `json:"structure"`
	Guidance  []string `json:"guidance,omitempty"`
	// QualitativeHint seeds placeholder slots when evidence runs out.
	QualitativeHint string `json:"qualitative_hint"`
}

// Section is one of the twelve fixed review sections.
type Section struct {
	Number int          `json:"number"`
	Name   string       `json:"name"`
	Group  string       `json:"group"`
	Style  StyleProfile `json:"style"`
}

// defaultStructure is the bullet shape every section shares.
const defaultStructure = "Context -> Action -> Detail -> Outcome"

// Sections returns the fixed, ordered taxonomy.
func Sections() []Section {
	return []Section{
		{1, "Engineering/Operation Excellence", GroupObjectives, StyleProfile{
			Tone:      "specific and data-driven, confident",
			Structure: defaultStructure,
			Guidance: []string{
				"focus on code quality, dependency management, bug fixes, automation",
				"include crash-rate and stability numbers exactly as extracted",
			},
			QualitativeHint: "an operational improvement or quality practice without a number attached",
		}},
		{2, "Roadmap Delivery", GroupObjectives, StyleProfile{
			Tone:      "confident delivery narrative, breadth of contributions",
			Structure: defaultStructure,
			Guidance: []string{
				"list completed features and integrations with what and why",
				"group similar deliverables together",
			},
			QualitativeHint: "a delivered roadmap item described by scope rather than metrics",
		}},
		{3, "Raising the Bar", GroupObjectives, StyleProfile{
			Tone:      "proactive ownership, continuous improvement",
			Structure: defaultStructure,
			Guidance: []string{
				"code reviews, quality monitoring, production issue resolution",
			},
			QualitativeHint: "a way team practices or standards were raised",
		}},
		{4, "Mentorship", GroupObjectives, StyleProfile{
			Tone:      "warm but professional, focused on enabling others",
			Structure: defaultStructure,
			Guidance: []string{
				"guiding junior developers, knowledge sharing, review culture",
			},
			QualitativeHint: "a mentoring interaction or knowledge-sharing habit",
		}},
		{5, "Tech Initiatives", GroupObjectives, StyleProfile{
			Tone:      "technical depth with clear impact",
			Structure: defaultStructure,
			Guidance: []string{
				"upgrades, migrations, performance work with exact versions and numbers",
			},
			QualitativeHint: "a technical initiative described by its architecture rather than metrics",
		}},
		{6, "Scope & Influence", GroupCompetencies, StyleProfile{
			Tone:      "breadth of influence, leadership without authority",
			Structure: defaultStructure,
			Guidance: []string{
				"cross-team impact, standards set, multiplier effects",
			},
			QualitativeHint: "influence that reached beyond the immediate team",
		}},
		{7, "Ambiguity & Problem Complexity", GroupCompetencies, StyleProfile{
			Tone:      "analytical and strategic",
			Structure: defaultStructure,
			Guidance: []string{
				"root cause analysis, trade-off evaluation, measurable outcomes",
			},
			QualitativeHint: "an ambiguous problem navigated to a clear outcome",
		}},
		{8, "Execution", GroupCompetencies, StyleProfile{
			Tone:      "consistency and reliability, systematic",
			Structure: defaultStructure,
			Guidance: []string{
				"sustainable delivery, quality gates, follow-through",
			},
			QualitativeHint: "a habit of dependable, planned delivery",
		}},
		{9, "Impact", GroupCompetencies, StyleProfile{
			Tone:      "lead with business value, action to result",
			Structure: defaultStructure,
			Guidance: []string{
				"organize into customer, business and technical dimensions",
				"use every significant quantitative result available",
			},
			QualitativeHint: "an impact on users or the business told without numbers",
		}},
		{10, "Culture & Founder Mentality", GroupCompetencies, StyleProfile{
			Tone:      "intrinsic motivation, ownership mindset",
			Structure: defaultStructure,
			Guidance: []string{
				"end-to-end ownership, proactive fixes, candid feedback",
			},
			QualitativeHint: "a cultural contribution beyond deliverables",
		}},
		{11, "What are your areas of strength?", GroupOpenQuestions, StyleProfile{
			Tone:      "confident but not boastful, evidence-based",
			Structure: defaultStructure,
			Guidance: []string{
				"synthesize strengths from the densest achievement patterns",
			},
			QualitativeHint: "a strength inferred from recurring achievement patterns",
		}},
		{12, "What are your areas of development?", GroupOpenQuestions, StyleProfile{
			Tone:      "growth-oriented and constructive, self-aware",
			Structure: defaultStructure,
			Guidance: []string{
				"frame as growth opportunities aligned with next-level expectations",
			},
			QualitativeHint: "a development area matching the role's next level",
		}},
	}
}

// SectionByNumber returns the section with the given number, or false.
func SectionByNumber(n int) (Section, bool) {
	for _, s := range Sections() {
		if s.Number == n {
			return s, true
		}
	}
	return Section{}, false
}
