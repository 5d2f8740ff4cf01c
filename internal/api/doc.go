// Package api provides the translation clients that turn a natural-language
// request into a shell command.
//
// # Architecture
//
//   - translator.go: Translator interface, provider factory (NewTranslator)
//     and reply normalization
//   - gemini.go: Google Gemini client with API key rotation
//   - azure.go: Azure OpenAI (OpenAI-compatible) chat completions client
//   - retry.go: exponential backoff for transient HTTP failures
//
// # Usage
//
//	cfg := config.NewConfig()
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//	translator, err := api.NewTranslator(ctx, cfg)
//	if err != nil {
//	    // handle error
//	}
//	command, err := translator.Translate(ctx, "show disk usage")
//
// An empty command with a nil error means the model answered with nothing
// runnable. Callers treat that as a normal outcome, not a failure.
package api
