package dto

// BriefingResult is the structured output the AI returns for one stock.
type BriefingResult struct {
	Headline   string   `json:"headline"`
	Assessment string   `json:"assessment"`
	KeyDrivers []string `json:"key_drivers"`
	RiskNote   string   `json:"risk_note"`
	Confidence float64  `json:"confidence"`
}

// GeminiAPIRequest is the request body for the generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single message in a Gemini request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text fragment in a Gemini message.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response body of the generateContent endpoint.
type GeminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
