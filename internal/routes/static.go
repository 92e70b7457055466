package routes

// DefaultStatic is the built-in static route table of the word counter site.
func DefaultStatic() []Entry {
	return []Entry{
		{Path: "/", Priority: 1.0, ChangeFrequency: Daily},
		{Path: "/character-counter", Priority: 0.9, ChangeFrequency: Monthly},
		{Path: "/sentence-counter", Priority: 0.8, ChangeFrequency: Monthly},
		{Path: "/paragraph-counter", Priority: 0.8, ChangeFrequency: Monthly},
		{Path: "/reading-time-calculator", Priority: 0.8, ChangeFrequency: Monthly},
		{Path: "/blog", Priority: 0.8, ChangeFrequency: Daily},
		{Path: "/compare/word-counter-vs-character-counter", Priority: 0.6, ChangeFrequency: Monthly},
		{Path: "/compare/word-counter-vs-google-docs", Priority: 0.6, ChangeFrequency: Monthly},
		{Path: "/about", Priority: 0.5, ChangeFrequency: Yearly},
		{Path: "/contact", Priority: 0.5, ChangeFrequency: Yearly},
		{Path: "/privacy-policy", Priority: 0.3, ChangeFrequency: Yearly},
		{Path: "/terms-of-service", Priority: 0.3, ChangeFrequency: Yearly},
	}
}
