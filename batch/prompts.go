package batch

import (
	"os"
	"strings"
)

// DefaultPrompts is the built-in campaign prompt set used when no prompt
// source is given.
var DefaultPrompts = []string{
	"Design a futuristic poster for iPhone 16 Black Friday Sale 50% OFF, dark neon background, golden glowing text, sleek product highlight.",
	"Create an iPhone 16 Summer Vacation Sale banner, beach theme with palm trees and ocean waves, bright blue and yellow colors, bold text ‘Half Price Special’.",
	"Christmas promotion poster for iPhone 16, snowy background, Christmas tree and gifts, red and green color palette, headline ‘Holiday Sale 50% OFF’.",
	"Valentine’s Day iPhone 16 Sale 50% OFF design, pink and red romantic style, heart decorations, tagline ‘The Perfect Gift for Love’.",
	"Back to School iPhone 16 banner, chalkboard and books illustration, youthful vibrant style, text ‘Student Discounts Up to 50%’.",
	"New Year 2025 iPhone 16 Celebration Sale, fireworks and champagne theme, black and gold luxury design, text ‘Kick Off the Year with 50% OFF’.",
	"Easter holiday promo for iPhone 16, pastel tones with eggs and bunny illustrations, headline ‘Spring Sale 50% OFF’.",
	"Travel Vacation iPhone 16 Summer Sale, airplane and suitcase graphics, bright orange and turquoise palette, text ‘Get 50% OFF Before You Fly’.",
	"Lunar New Year 2025 iPhone 16 sale poster, red and gold festival theme, lanterns and blossom flowers, text ‘Special 50% OFF New Year Deals’.",
	"Cyber Monday iPhone 16 flash sale design, futuristic digital grid background, blue and black color scheme, headline ‘One Day Only – 50% OFF’.",
}

// DefaultSystemPrompt steers image models toward ad-template output with
// clear safe zones for the logo and label overlays added later.
const DefaultSystemPrompt = `You are a professional marketing image generator AI.
Your goal is to produce clean, eye-catching, and brand-ready images that can be used as advertising templates.

## Guidelines:
1. **Focus on marketing aesthetics**:
   - Modern, minimal, and visually appealing layouts.
   - High contrast and clear background areas for overlaying text and logos.
   - Balanced composition with empty safe zones where branding information can be placed.

2. **Brand integration**:
   - Leave enough uncluttered space in the top, bottom, or side areas for a company logo, phone number, or email address.
   - Do NOT generate phone numbers, emails, or logos yourself; leave placeholders.

3. **Style consistency**:
   - Use vibrant colors, gradients, or product-centric visuals depending on the industry.
   - Keep text areas plain and not noisy (avoid unnecessary details that would obstruct branding).

4. **Output requirements**:
   - High resolution (minimum 1080x1080).
   - Print and digital friendly, scalable without quality loss.
   - Realistic lighting and sharpness suitable for online ads and posters.

5. **Variations by industry**:
   - Food & Beverage: appetizing dishes, fresh ingredients, bright colors.
   - Real Estate: clean modern houses/apartments, warm lighting, professional look.
   - Beauty/Wellness: soft tones, spa or skincare scenes, calming backgrounds.

6. **Strict rules**:
   - Never embed actual text into the image (besides natural signs in the scene if needed).
   - Never invent fake logos, brands, or contact info.
   - Always provide visually clear areas where real brand elements can be added later.`

// ReadPromptsFile loads prompts from a text file, one per line.
// Blank lines are dropped.
func ReadPromptsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var prompts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	return prompts, nil
}
