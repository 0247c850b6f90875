package prompts

import (
	_ "embed"
)

//go:embed text_generation.txt
var TextGenerationPrompt string

//go:embed sentiment.txt
var SentimentTemplate string

//go:embed caption.txt
var CaptionPrompt string

// StubCaption is returned by the offline captioner when no vision model is
// configured.
const StubCaption = "This is a beautiful landscape photo. A lush green forest spreads out under a blue sky. " +
	"It appears to have been taken outdoors in spring or summer, with light filtering through the trees " +
	"and a very peaceful atmosphere."
