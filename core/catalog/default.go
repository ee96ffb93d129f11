package catalog

// Default returns the built-in catalog. Every call builds a fresh value.
func Default() *PlatformInfo {
	info := &PlatformInfo{
		Name: "Elimu",
		Features: []Feature{
			{
				ID:          "ai-tutor",
				Name:        "AI Tutor",
				Description: "A personal tutor that answers questions, explains concepts step by step and adapts to your level.",
				Capabilities: []string{
					"step-by-step explanations",
					"worked examples",
					"follow-up practice questions",
					"progress-aware hints",
				},
				HowTo: "open the AI Tutor from your dashboard, pick a subject and type your question. " +
					"Ask follow-up questions in the same conversation and the tutor will build on its previous answers.",
			},
			{
				ID:          "assignment-generator",
				Name:        "Assignment Generator",
				Description: "Creates assignments with instructions, rubrics and answer keys for any topic and grade level.",
				Capabilities: []string{
					"custom difficulty levels",
					"automatic rubrics",
					"answer keys",
					"export to PDF",
				},
				HowTo: "choose a subject and topic, set the grade level and number of questions, then click Generate. " +
					"You can edit any question before publishing the assignment to your class.",
			},
			{
				ID:          "quiz-generator",
				Name:        "Quiz Generator",
				Description: "Builds multiple-choice, true/false and short-answer quizzes from a topic or your own notes.",
				Capabilities: []string{
					"multiple question types",
					"instant grading",
					"explanations for every answer",
					"timed mode",
				},
				HowTo: "paste your notes or pick a topic, choose the question types you want and start the quiz. " +
					"Your results and explanations appear as soon as you submit.",
			},
			{
				ID:          "flashcard-generator",
				Name:        "Flashcard Generator",
				Description: "Turns any topic or document into spaced-repetition flashcards.",
				Capabilities: []string{
					"spaced repetition scheduling",
					"image and formula support",
					"shareable decks",
				},
				HowTo: "select a topic or upload a document and the generator proposes a deck. " +
					"Review the cards daily and the scheduler brings back the ones you find hardest.",
			},
			{
				ID:          "course-catalog",
				Name:        "Course Catalog",
				Description: "Browse structured courses created by educators, organised by subject and level.",
				Capabilities: []string{
					"filtering by subject and level",
					"enrolment tracking",
					"course ratings",
				},
				HowTo: "open Courses from the main menu, filter by subject or level and click Enrol on any course you like.",
			},
			{
				ID:          "community",
				Name:        "Community Discussions",
				Description: "Discussion boards where students and educators ask questions and share study tips.",
				Capabilities: []string{
					"subject channels",
					"upvoted answers",
					"educator-verified responses",
				},
				HowTo: "visit the Community page, join the channels for your subjects and post a question or reply to one.",
			},
			{
				ID:          "educator-dashboard",
				Name:        "Educator Dashboard",
				Description: "A dashboard for educators to manage classes, assignments and student progress.",
				Capabilities: []string{
					"class management",
					"progress analytics",
					"assignment scheduling",
				},
				HowTo: "switch to the educator view from your profile menu, create a class and invite your students with the class code.",
			},
		},
		Subjects: []Subject{
			{Name: "Mathematics", Topics: []string{"Algebra", "Calculus", "Geometry", "Statistics", "Trigonometry", "Probability"}},
			{Name: "Physics", Topics: []string{"Mechanics", "Thermodynamics", "Electromagnetism", "Optics", "Quantum Physics"}},
			{Name: "Chemistry", Topics: []string{"Organic Chemistry", "Stoichiometry", "Chemical Bonding", "Acids and Bases", "Periodic Table"}},
			{Name: "Biology", Topics: []string{"Genetics", "Cell Biology", "Evolution", "Ecology", "Human Anatomy"}},
			{Name: "Computer Science", Topics: []string{"Programming", "Algorithms", "Data Structures", "Databases", "Machine Learning"}},
			{Name: "History", Topics: []string{"World History", "Ancient Civilizations", "Cold War", "Industrial Revolution"}},
			{Name: "English", Topics: []string{"Grammar", "Essay Writing", "Literature", "Poetry"}},
			{Name: "Economics", Topics: []string{"Microeconomics", "Macroeconomics", "Supply and Demand", "Inflation"}},
		},
		Plans: []Plan{
			{
				ID:       "free",
				Name:     "Free",
				Price:    "$0/month",
				Features: []string{"5 AI Tutor sessions per day", "basic quiz and flashcard generators", "community access"},
				Keywords: []string{"free", "trial"},
			},
			{
				ID:       "premium",
				Name:     "Premium",
				Price:    "$9.99/month",
				Features: []string{"unlimited AI Tutor sessions", "advanced assignment generator", "progress analytics"},
				Keywords: []string{"premium"},
			},
			{
				ID:       "team",
				Name:     "Team",
				Price:    "$29.99/month for 5 seats",
				Features: []string{"everything in Premium", "educator dashboard", "shared class workspaces"},
				Keywords: []string{"team"},
			},
		},
		Templates: Templates{
			Greeting: "Hello! I'm the {platformName} learning assistant. I can tell you about our features, " +
				"subjects and pricing, or help you study. What would you like to know?",
			FeatureExplanation: "{feature}: {description} Key capabilities include {capabilities}.",
			FeatureHowTo:       "Here's how to use the {feature}: {howTo}",
			PricingOverview:    "{platformName} offers three plans. {freePlan} {premiumPlan} {teamPlan}",
			PricingPlan:        "The {planName} plan costs {planPrice} and includes {planFeatures}.",
			SubjectOverview: "We cover {subject} in depth, including {topics}. " +
				"Which topic would you like to explore?",
			SubjectTopic: "{topic} is a key part of {subject}. I can explain the core concepts, walk through " +
				"worked examples or generate practice questions on {topic}. Where would you like to start?",
			Comparison: "Comparisons are a great way to learn. Tell me the two concepts you'd like to compare " +
				"and I'll break down their similarities and differences.",
			HowTo: "I can walk you through it step by step. Could you tell me a bit more about what you're trying to do?",
			Definition: "Good question! Tell me which subject this is for and I'll explain it with examples, " +
				"or open the AI Tutor for a detailed walkthrough.",
			ProblemSolving: "Let's solve it together. Share the full problem and I'll guide you through each step " +
				"rather than just giving you the answer.",
			ResourceRequest: "Our library has articles, videos and interactive tools. Tell me the subject you're " +
				"studying and I'll suggest the best matches.",
			Account: "You can manage your account, password and profile from the Settings page. If you can't sign in, " +
				"use the \"Forgot password\" link on the login screen.",
			Feedback: "Thanks for your feedback! It helps us make {platformName} better.",
			Opinion: "I try to stay neutral, but I can lay out the different perspectives so you can form your own view.",
			Clarification: "I'm not sure I understood that. Could you rephrase, or ask me about a subject, " +
				"a feature like the AI Tutor, or our pricing plans?",
		},
		Resources: Resources{
			Articles: []Resource{
				{Title: "Understanding Derivatives", URL: "https://elimu.example/articles/derivatives", Description: "Limits, slopes and the derivative rules.", Tags: []string{"mathematics", "calculus"}},
				{Title: "Solving Linear Equations", URL: "https://elimu.example/articles/linear-equations", Description: "Isolating variables with confidence.", Tags: []string{"mathematics", "algebra"}},
				{Title: "Probability Basics", URL: "https://elimu.example/articles/probability", Description: "Events, outcomes and counting.", Tags: []string{"mathematics", "probability", "statistics"}},
				{Title: "Newton's Laws Explained", URL: "https://elimu.example/articles/newtons-laws", Description: "Force, mass and acceleration.", Tags: []string{"physics", "mechanics"}},
				{Title: "Balancing Chemical Equations", URL: "https://elimu.example/articles/balancing-equations", Description: "A stoichiometry primer.", Tags: []string{"chemistry", "stoichiometry"}},
				{Title: "DNA and Heredity", URL: "https://elimu.example/articles/dna", Description: "How traits are passed on.", Tags: []string{"biology", "genetics"}},
				{Title: "Big-O Notation", URL: "https://elimu.example/articles/big-o", Description: "Reasoning about algorithm cost.", Tags: []string{"computer science", "algorithms"}},
				{Title: "Writing a Strong Thesis", URL: "https://elimu.example/articles/thesis", Description: "Plan and argue an essay.", Tags: []string{"english", "essay writing"}},
			},
			Videos: []Resource{
				{Title: "Calculus in 20 Minutes", URL: "https://elimu.example/videos/calculus-intro", Description: "A visual introduction.", Tags: []string{"mathematics", "calculus"}},
				{Title: "Geometry Proofs Walkthrough", URL: "https://elimu.example/videos/geometry-proofs", Description: "Two-column proofs step by step.", Tags: []string{"mathematics", "geometry"}},
				{Title: "Trigonometry Made Simple", URL: "https://elimu.example/videos/trigonometry", Description: "Sine, cosine and the unit circle.", Tags: []string{"mathematics", "trigonometry"}},
				{Title: "Thermodynamics Crash Course", URL: "https://elimu.example/videos/thermodynamics", Description: "Heat, work and entropy.", Tags: []string{"physics", "thermodynamics"}},
				{Title: "Cell Structure Tour", URL: "https://elimu.example/videos/cell-structure", Description: "Organelles and their jobs.", Tags: []string{"biology", "cell biology"}},
				{Title: "Supply and Demand Curves", URL: "https://elimu.example/videos/supply-demand", Description: "Market equilibrium explained.", Tags: []string{"economics", "microeconomics"}},
			},
			Tools: []Resource{
				{Title: "Graphing Calculator", URL: "https://elimu.example/tools/graphing-calculator", Description: "Plot functions and explore derivatives.", Tags: []string{"mathematics", "calculus", "algebra"}},
				{Title: "Unit Converter", URL: "https://elimu.example/tools/unit-converter", Description: "Convert between measurement systems.", Tags: []string{"physics", "chemistry", "mathematics"}},
				{Title: "Periodic Table Explorer", URL: "https://elimu.example/tools/periodic-table", Description: "Element properties at a glance.", Tags: []string{"chemistry", "periodic table"}},
				{Title: "Code Playground", URL: "https://elimu.example/tools/code-playground", Description: "Run small programs in the browser.", Tags: []string{"computer science", "programming"}},
			},
		},
	}
	info.setKinds()
	return info
}
