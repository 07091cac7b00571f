package classify

var spaceTips = map[string][]string{
	"rooftop": {
		"Perfect rooftop space for urban farming! 🏙️",
		"Install wind-resistant containers and raised beds",
		"Consider vertical gardening systems to maximize space",
		"Plant heat-tolerant vegetables like tomatoes, peppers, and herbs",
		"Set up shade cloth for protection during hot summer days",
		"Install drip irrigation system for efficient watering",
	},
	"concrete": {
		"Excellent concrete space for urban container farming! 🏀",
		"This flat concrete surface is perfect for mobile container gardens",
		"Use large planters (20+ gallons) with drainage holes and wheels for mobility",
		"Install shade cloth structures to protect plants from reflected heat",
		"Create raised growing beds to improve drainage and root health",
		"Perfect for herbs, leafy greens, tomatoes, and peppers in containers",
		"Consider vertical growing systems to maximize your space efficiency",
	},
	"balcony": {
		"Excellent balcony space for micro-gardening! 🏢",
		"Maximize vertical space with hanging planters and wall gardens",
		"Choose compact varieties: cherry tomatoes, herbs, and lettuce",
		"Install railing planters to utilize edge space efficiently",
		"Consider self-watering containers for low maintenance",
		"Use lightweight containers to avoid overloading the structure",
	},
	"garden": {
		"Beautiful garden space with great potential! 🌳",
		"Plan raised beds for better soil control and drainage",
		"Create different zones for sun-loving and shade-tolerant plants",
		"Start a compost system to enrich your soil naturally",
		"Consider companion planting for natural pest control",
		"Install pathways for easy access and maintenance",
	},
	GuessGeneral: {
		"Excellent space for growing plants! 🌱",
		"Start with easy-to-grow herbs like basil, mint, or cilantro",
		"Consider container gardening for flexibility and easy maintenance",
		"Observe your space throughout the day to identify sunny and shaded areas",
		"Plan your layout based on plant sunlight requirements",
		"Use raised beds or containers to maximize your growing potential",
	},
}

// Tips returns layout advice for a space type guess. Unknown guesses,
// including "empty", get the general list.
func Tips(guess string) []string {
	tips, ok := spaceTips[guess]
	if !ok {
		tips = spaceTips[GuessGeneral]
	}
	out := make([]string, len(tips))
	copy(out, tips)
	return out
}
