package setup

// CustomStyleIndex is the style list entry that asks for free text.
const CustomStyleIndex = 6

// StyleLabels are shown on the communication style screen.
var StyleLabels = []string{
	"Direct & concise",
	"Friendly & casual",
	"Professional & polished",
	"Expressive & playful",
	"Technical & detailed",
	"Balanced",
	"Custom (write your own)",
}

var styleTexts = []string{
	"Be direct and concise. Skip pleasantries. Get to the point.",
	"Be friendly, human, and conversational. Show warmth and empathy while staying efficient. Use natural contractions.",
	"Be professional and polished. Stay calm, structured, and respectful. Use occasional tone-setting emojis only when appropriate.",
	"Be expressive and playful when appropriate. Use relevant emojis naturally (0-2 max), and keep serious topics emoji-light.",
	"Be technical and detailed. Thorough explanations, code-first.",
	"Adapt to the situation. Default to warm and clear communication; be concise when needed, thorough when it matters.",
}

// StyleText returns the canned style at idx, or custom for the custom entry.
func StyleText(idx int, custom string) string {
	if idx >= 0 && idx < len(styleTexts) {
		return styleTexts[idx]
	}
	return custom
}
