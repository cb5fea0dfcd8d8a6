// Package gemini translates natural language listing queries into
// structured filters using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/tomtejakt"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Translator implements tomtejakt.FilterTranslator at compile time.
var _ tomtejakt.FilterTranslator = (*Translator)(nil)

// Translator implements tomtejakt.FilterTranslator using Google Gemini.
type Translator struct {
	client *genai.Client
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client) *Translator {
	return &Translator{client: client}
}

// Translate converts a natural language query into a listing filter.
func (t *Translator) Translate(ctx context.Context, query string) (*tomtejakt.ListingFilter, error) {
	if query == "" {
		return nil, tomtejakt.Errorf(tomtejakt.EINVALID, "query required")
	}

	config := BuildConfig()

	result, err := t.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(query)}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, tomtejakt.Errorf(tomtejakt.EINTERNAL, "gemini returned nil result")
	}

	return ParseFilter(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls. The
// response schema constrains the model to emit a JSON listing filter.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate Norwegian real estate search queries into structured filters. " +
					"Emit only fields the query explicitly asks for and leave everything else out. " +
					"category is \"home\" for houses and dwellings, \"tomt\" for plots of land. " +
					"obligation is \"none\" when the user wants plots without building obligation (byggeplikt), " +
					"\"has_clause\" or \"has_deadline\" when they ask for those. " +
					"isDeveloped is 1 for developed plots (connected to water and road), 0 for undeveloped. " +
					"Prices are in NOK and areas in square meters.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"municipalityCode": {Type: genai.TypeString},
				"category":         {Type: genai.TypeString, Enum: []string{"home", "tomt"}},
				"obligation":       {Type: genai.TypeString, Enum: []string{"none", "has_clause", "has_deadline", "unknown"}},
				"isDeveloped":      {Type: genai.TypeInteger},
				"maxPrice":         {Type: genai.TypeInteger},
				"minArea":          {Type: genai.TypeInteger},
				"isNew":            {Type: genai.TypeBoolean},
			},
		},
	}
}

// BuildUserPrompt builds the user prompt for a query.
func BuildUserPrompt(query string) string {
	return fmt.Sprintf("Query: %s", query)
}

// ParseFilter decodes a JSON filter response into a listing filter.
func ParseFilter(text string) (*tomtejakt.ListingFilter, error) {
	var filter tomtejakt.ListingFilter
	if err := json.Unmarshal([]byte(text), &filter); err != nil {
		return nil, tomtejakt.Errorf(tomtejakt.EINTERNAL, "failed to parse filter response: %v", err)
	}

	if filter.Category != nil {
		switch *filter.Category {
		case tomtejakt.CategoryHome, tomtejakt.CategoryPlot:
		default:
			return nil, tomtejakt.Errorf(tomtejakt.EINTERNAL, "unexpected category %q in filter response", *filter.Category)
		}
	}
	if filter.Obligation != nil {
		switch *filter.Obligation {
		case tomtejakt.ObligationNone, tomtejakt.ObligationClause, tomtejakt.ObligationDeadline, tomtejakt.ObligationUnknown:
		default:
			return nil, tomtejakt.Errorf(tomtejakt.EINTERNAL, "unexpected obligation %q in filter response", *filter.Obligation)
		}
	}

	return &filter, nil
}
