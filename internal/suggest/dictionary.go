package suggest

// Keyword tables driving the suggestion heuristics. Matching is case
// insensitive; multi-word entries are matched as phrases against the whole
// input, single words against tokens (with a fuzzy fallback for typos).

var actionSynonyms = map[string][]string{
	"create":      {"create", "build", "make", "design", "develop", "establish", "generate", "produce", "construct"},
	"analyze":     {"analyze", "examine", "study", "investigate", "research", "evaluate", "assess", "review", "inspect", "audit"},
	"manage":      {"manage", "organize", "coordinate", "supervise", "oversee", "direct", "administer", "handle"},
	"communicate": {"communicate", "discuss", "present", "explain", "share", "inform", "notify", "announce", "report"},
	"plan":        {"plan", "strategize", "schedule", "arrange", "prepare", "outline", "draft", "sketch"},
	"implement":   {"implement", "execute", "deploy", "launch", "activate", "initiate", "start", "begin", "commence"},
	"optimize":    {"optimize", "improve", "enhance", "refine", "upgrade", "boost", "maximize", "streamline", "tune"},
	"test":        {"test", "validate", "verify", "check", "prove", "confirm", "trial", "experiment"},
	"fix":         {"fix", "repair", "correct", "resolve", "solve", "mend", "restore", "remedy", "troubleshoot", "debug"},
}

var domainSynonyms = map[string][]string{
	"technology": {"software", "hardware", "programming", "development", "coding", "engineering", "computing", "digital", "tech"},
	"business":   {"management", "strategy", "operations", "finance", "marketing", "sales", "administration", "corporate"},
	"education":  {"learning", "teaching", "training", "instruction", "academic", "tutorial", "curriculum"},
	"healthcare": {"medical", "clinical", "therapeutic", "health", "wellness", "treatment", "diagnosis", "patient"},
	"creative":   {"design", "artistic", "creative", "aesthetic", "visual", "graphic", "imaginative"},
	"research":   {"investigation", "study", "analysis", "exploration", "discovery", "experimentation", "inquiry", "survey"},
}

var (
	urgentWords = []string{"urgent", "critical", "immediate", "asap", "emergency", "pressing", "vital", "essential", "crucial", "top-priority"}
	highWords   = []string{"important", "significant", "major", "key", "primary", "main", "principal", "chief", "leading"}
	lowWords    = []string{"minor", "secondary", "optional", "someday", "eventually", "whenever", "later", "low-priority", "non-essential", "deferrable"}

	immediateWords   = []string{"now", "today", "immediately", "right away", "at once", "instantly", "promptly"}
	deadlineWords    = []string{"deadline", "due", "by tomorrow", "soon", "expires", "closes", "ends"}
	urgentActions    = []string{"fix", "resolve", "correct", "repair", "emergency", "critical", "urgent"}
)

var difficultyWords = map[string][]string{
	"easy":   {"simple", "basic", "quick", "easy", "straightforward"},
	"medium": {"moderate", "standard", "regular", "normal"},
	"hard":   {"complex", "advanced", "difficult", "challenging", "sophisticated"},
}

var categoryKeywords = map[string][]string{
	"communication":  {"email", "call", "meeting", "message", "chat"},
	"development":    {"code", "programming", "development", "software", "bug"},
	"planning":       {"plan", "schedule", "organize", "prepare", "strategy"},
	"analysis":       {"analyze", "review", "research", "study", "investigate"},
	"creative":       {"design", "create", "artistic", "visual", "creative"},
	"administrative": {"document", "file", "organize", "manage", "admin"},
}

var actionDescriptions = map[string]string{
	"create":      "Design and build the deliverable from scratch, covering requirements through a working result.",
	"analyze":     "Examine the available material, evaluate findings, and summarize conclusions.",
	"manage":      "Coordinate the people and moving parts involved and keep progress on track.",
	"communicate": "Prepare and deliver the information to the people who need it.",
	"plan":        "Lay out the steps, ordering, and schedule needed to get this done.",
	"implement":   "Execute the prepared work and bring it into use.",
	"optimize":    "Measure the current state and improve it without breaking existing behavior.",
	"test":        "Verify functionality, identify issues, and confirm quality before sign-off.",
	"fix":         "Identify and resolve the issue to restore proper functionality.",
}
