package translate

import (
	"fmt"
)

// Explanation is the fixed narrative describing how a query was processed.
type Explanation struct {
	Summary string
	Steps   []string
}

// explanationSteps is the five-step pipeline narrative. The steps are the
// same for every query; only the summary is templated.
var explanationSteps = []string{
	"Received natural language query",
	"Identified query type based on patterns",
	"Extracted key entities and attributes",
	"Mapped natural language terms to database schema",
	"Constructed structured query",
}

// Explain describes how the original text was translated. Both the original
// text and the rendered structured query appear verbatim in the summary.
func Explain(original string, q Query) Explanation {
	steps := make([]string, len(explanationSteps))
	copy(steps, explanationSteps)

	summary := fmt.Sprintf(
		"The query '%s' was interpreted as a request for structured data. "+
			"The system identified relevant data entities and translated it to: %s",
		original, q.String(),
	)

	return Explanation{Summary: summary, Steps: steps}
}
