package integral

import "github.com/AbdouB/persona/internal/models"

// QuestionBank is the fixed weighted-choice instrument. Each option awards
// points to the levels it evidences; most options point at two adjacent
// levels because real answers rarely isolate a single stage.
var QuestionBank = []Question{
	{
		Text: "When an important rule gets in the way of what you want, you most often:",
		Options: []models.QuestionOption{
			{Text: "Work around it; rules are for people who can't push through", Points: map[string]float64{"Impulsive": 3}},
			{Text: "Follow it; rules hold things together", Points: map[string]float64{"Conformist": 3}},
			{Text: "Challenge it through the proper channel if it blocks results", Points: map[string]float64{"Achiever": 3, "Conformist": 1}},
			{Text: "Ask whose interests the rule serves before deciding", Points: map[string]float64{"Pluralist": 3, "Integral": 1}},
		},
	},
	{
		Text: "A strong disagreement with someone you respect usually means:",
		Options: []models.QuestionOption{
			{Text: "One of us is wrong and it isn't me", Points: map[string]float64{"Impulsive": 2, "Conformist": 1}},
			{Text: "We should defer to whoever has the standing to decide", Points: map[string]float64{"Conformist": 3}},
			{Text: "A chance to argue it out and find the stronger case", Points: map[string]float64{"Achiever": 3}},
			{Text: "Two partial views that are both true somewhere", Points: map[string]float64{"Pluralist": 3}},
			{Text: "A signal to look at the frame generating both positions", Points: map[string]float64{"Integral": 3, "Transpersonal": 1}},
		},
	},
	{
		Text: "Success, to you, mostly means:",
		Options: []models.QuestionOption{
			{Text: "Getting what I want when I want it", Points: map[string]float64{"Impulsive": 3}},
			{Text: "Being respected by the people who matter to me", Points: map[string]float64{"Conformist": 3}},
			{Text: "Measurable achievement against goals I set", Points: map[string]float64{"Achiever": 3}},
			{Text: "Everyone affected having a genuine voice", Points: map[string]float64{"Pluralist": 3}},
			{Text: "Acting well within a much larger unfolding", Points: map[string]float64{"Integral": 2, "Transpersonal": 2}},
		},
	},
	{
		Text: "When two groups you belong to want opposite things, you:",
		Options: []models.QuestionOption{
			{Text: "Side with whichever helps me more right now", Points: map[string]float64{"Impulsive": 3}},
			{Text: "Stay loyal to the one I've belonged to longest", Points: map[string]float64{"Conformist": 3}},
			{Text: "Back the option with the best overall outcome", Points: map[string]float64{"Achiever": 3}},
			{Text: "Hold both, and resist pressure to pick a side too early", Points: map[string]float64{"Pluralist": 2, "Integral": 2}},
		},
	},
	{
		Text: "The best explanation for why people behave as they do is:",
		Options: []models.QuestionOption{
			{Text: "They do what they can get away with", Points: map[string]float64{"Impulsive": 3}},
			{Text: "They follow what they were raised to believe", Points: map[string]float64{"Conformist": 3}},
			{Text: "They pursue incentives, mostly rationally", Points: map[string]float64{"Achiever": 3}},
			{Text: "Their context and culture shape what seems possible", Points: map[string]float64{"Pluralist": 3}},
			{Text: "Different developmental logics produce different behavior", Points: map[string]float64{"Integral": 3}},
		},
	},
	{
		Text: "Your long-term plans are best described as:",
		Options: []models.QuestionOption{
			{Text: "I don't plan far; things change too fast", Points: map[string]float64{"Impulsive": 2}},
			{Text: "The path people like me are expected to take", Points: map[string]float64{"Conformist": 3}},
			{Text: "A ladder of concrete milestones I drive toward", Points: map[string]float64{"Achiever": 3}},
			{Text: "Directions I revise as I learn who the plan affects", Points: map[string]float64{"Pluralist": 3}},
			{Text: "Loose intentions held inside processes bigger than me", Points: map[string]float64{"Integral": 2, "Transpersonal": 2}},
		},
	},
	{
		Text: "When you notice a flaw in your own thinking, you typically:",
		Options: []models.QuestionOption{
			{Text: "Shrug it off; second-guessing slows you down", Points: map[string]float64{"Impulsive": 2, "Achiever": 1}},
			{Text: "Check what the people I trust think", Points: map[string]float64{"Conformist": 3}},
			{Text: "Fix it and tighten my method so it doesn't recur", Points: map[string]float64{"Achiever": 3}},
			{Text: "Get curious about what the flaw reveals about my assumptions", Points: map[string]float64{"Pluralist": 2, "Integral": 2}},
			{Text: "Watch the thought arise without needing to own it", Points: map[string]float64{"Transpersonal": 3}},
		},
	},
	{
		Text: "Meaning in life comes mostly from:",
		Options: []models.QuestionOption{
			{Text: "Intensity; feeling fully alive", Points: map[string]float64{"Impulsive": 3}},
			{Text: "Duty done well and a place in something lasting", Points: map[string]float64{"Conformist": 3}},
			{Text: "Building something real through my own effort", Points: map[string]float64{"Achiever": 3}},
			{Text: "Connection, fairness, and shared growth", Points: map[string]float64{"Pluralist": 3}},
			{Text: "Participating consciously in the whole", Points: map[string]float64{"Integral": 2, "Transpersonal": 2}},
		},
	},
}
