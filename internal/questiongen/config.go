package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// question inside the structured client's retry loop. The first
	// failure rejects the attempt.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Question
	// generation wants variety, so the default is well above zero.
	Temperature float64

	// DefaultTopic is used when the caller supplies no topic.
	DefaultTopic string

	// DefaultDifficulty is used when the caller supplies no difficulty.
	DefaultDifficulty Difficulty
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:        []Validator{&StructuralValidator{}},
		MaxTokens:         1024,
		Temperature:       0.7,
		DefaultTopic:      "Algebra",
		DefaultDifficulty: DifficultyMedium,
	}
}
