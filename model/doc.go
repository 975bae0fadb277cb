// Package model provides model constants for all supported AI providers.
//
// This package exposes typed model constants with pricing information.
// Models know their provider, enabling automatic routing in the client.
//
// # Image Models
//
// Use image models with brandkit.WithImageModel() or as client defaults:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Google: os.Getenv("GOOGLE_API_KEY")},
//	    Defaults: client.Defaults{
//	        Image: model.Gemini20FlashImage,
//	    },
//	})
//
// # Chat Models
//
// Chat models drive the conversational endpoints:
//
//	resp, err := c.Chat(ctx, messages, brandkit.WithModel(model.GPT4o))
//
// # Raw Identifiers
//
// Requests arriving over HTTP or CLI flags carry bare identifier strings.
// Resolve maps them back onto catalog entries, falling back to prefix
// rules for identifiers the catalog does not list yet:
//
//	m, err := model.Resolve("gemini-2.0-flash-preview-image-generation")
//
// # Pricing Information
//
// Models include pricing for cost estimation:
//
//	pricing := model.Gemini20FlashImage.Pricing()
//	cost := float64(imageCount) * pricing.PerImage
package model
