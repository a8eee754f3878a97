package training

import (
	"fmt"

	"github.com/sellsense/knowbase/core"
)

// Hand-authored fallback items, substituted per category when the
// generation service fails or returns unparsable output. They are generic
// on purpose: better a usable placeholder than an invented product fact.

func fallbackQuizzes(product string) []core.QuizItem {
	return []core.QuizItem{
		{
			Question: fmt.Sprintf("What is the first step when presenting %s to a new prospect?", product),
			Options: []string{
				"Quote the full price list",
				"Ask about the prospect's current situation and needs",
				"List every technical specification",
				"Offer an immediate discount",
			},
			CorrectAnswerIndex: 1,
			Explanation:        "Discovery comes first: understanding the prospect's needs lets you position the product against real problems.",
			Difficulty:         "easy",
			Category:           "positioning",
		},
		{
			Question: fmt.Sprintf("A prospect asks a question about %s you cannot answer. What should you do?", product),
			Options: []string{
				"Give your best guess",
				"Change the subject",
				"Commit to finding the answer and follow up with the source",
				"Tell them the detail does not matter",
			},
			CorrectAnswerIndex: 2,
			Explanation:        "Guessed answers destroy trust. A prompt, sourced follow-up builds it.",
			Difficulty:         "easy",
			Category:           "features",
		},
	}
}

func fallbackScenarios(product string) []core.Scenario {
	return []core.Scenario{
		{
			Title:             "First discovery call",
			CustomerProfile:   "A prospect who has heard of the product but knows few details.",
			Situation:         fmt.Sprintf("Thirty minutes booked to introduce %s and qualify the opportunity.", product),
			Objective:         "Uncover two concrete needs and agree on a follow-up demo.",
			SuggestedApproach: "Lead with open questions about their current setup before presenting anything.",
		},
		{
			Title:             "Price-sensitive buyer",
			CustomerProfile:   "A budget-conscious buyer comparing cheaper alternatives.",
			Situation:         fmt.Sprintf("The buyer likes %s but keeps steering the conversation to price.", product),
			Objective:         "Shift the discussion from price to total value and cost of ownership.",
			SuggestedApproach: "Quantify what the alternative's gaps would cost them over a year.",
		},
	}
}

func fallbackObjectionHandlers(product string) []core.ObjectionHandler {
	return []core.ObjectionHandler{
		{
			Objection: "It costs more than the competitor.",
			Response:  fmt.Sprintf("Price is one part of the picture. Can we compare what %s includes against what you would need to add on with the alternative?", product),
			Tip:       "Never argue the number itself; widen the frame to total value.",
		},
		{
			Objection: "We are happy with what we have.",
			Response:  "That makes sense. Out of curiosity, if you could change one thing about your current setup, what would it be?",
			Tip:       "Satisfied customers still have friction points; let them name one.",
		},
		{
			Objection: "I need to think about it.",
			Response:  "Of course. What specifically would be most useful for me to clarify while you consider it?",
			Tip:       "Convert a vague delay into a concrete open question.",
		},
	}
}

func fallbackComparisons(product string) []core.Comparison {
	return []core.Comparison{
		{
			Competitor: "Lower-priced alternatives",
			Advantage:  "Completeness out of the box",
			TalkTrack:  fmt.Sprintf("%s includes what the cheaper options make you assemble yourself, so the real cost gap is smaller than the sticker suggests.", product),
		},
		{
			Competitor: "Doing nothing",
			Advantage:  "Cost of the status quo",
			TalkTrack:  "Staying put has a price too; let's put a number on what the current approach costs you each quarter.",
		},
	}
}

func fallbackTalkingPoints(product string) []core.TalkingPoint {
	return []core.TalkingPoint{
		{
			Headline: "Built for your day-to-day",
			Detail:   fmt.Sprintf("%s is designed around the workflows your team already runs, not the other way around.", product),
		},
		{
			Headline: "Proven where it counts",
			Detail:   "Ask us for reference customers in your segment; we will connect you directly.",
		},
	}
}

func fallbackRolePlayScripts(product string) []core.RolePlayScript {
	return []core.RolePlayScript{
		{
			Title:        "Opening a discovery call",
			CustomerRole: "A polite but guarded prospect with limited time.",
			SalesGoal:    "Practice earning the right to ask discovery questions.",
			Lines: []core.ScriptLine{
				{Speaker: "rep", Text: "Thanks for the time today. Before I show anything, I'd like to understand how you handle this today. Is that okay?"},
				{Speaker: "customer", Text: "Sure, but I only have twenty minutes."},
				{Speaker: "rep", Text: "Then let's focus. What's the one thing about your current setup you'd fix first?"},
				{Speaker: "customer", Text: "Honestly, the amount of manual work."},
				{Speaker: "rep", Text: fmt.Sprintf("That's exactly where %s tends to help most. Can you walk me through where the manual steps pile up?", product)},
				{Speaker: "customer", Text: "Mostly in the weekly reporting."},
			},
		},
	}
}

// defaultPlan is the fixed fallback when plan generation fails.
func defaultPlan(userID string) *core.TrainingPlan {
	return &core.TrainingPlan{
		UserID: userID,
		Goals: []string{
			"Complete product knowledge fundamentals",
			"Practice objection handling twice a week",
			"Shadow two calls with a senior rep",
		},
		Milestones: []string{
			"Week 1: pass the product quiz at 80% or better",
			"Week 2: run one full role-play scenario",
			"Week 4: lead a live call end to end",
		},
		FocusAreas: []string{
			"Product knowledge",
			"Discovery questions",
			"Objection handling",
		},
		Summary: "A foundational four-week ramp covering product knowledge, guided practice, and a first live call.",
	}
}
