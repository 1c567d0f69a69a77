package loadtest

import "encoding/json"

// Outcome classifies a single completed request.
type Outcome int

// Request classifications.
const (
	OutcomeSuccess Outcome = iota
	OutcomeWarning
	OutcomeError
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeWarning:
		return "warning"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Validator classifies the body of a 200 response.
type Validator func(body []byte) Outcome

// Endpoint describes one target path and how to classify its responses. A
// nil Validate counts any 200 response as a success.
type Endpoint struct {
	Path     string
	Validate Validator
}

// ValidateStatus requires a positive height and a healthy flag: a bad height
// is an error, an unhealthy flag is a warning.
func ValidateStatus(body []byte) Outcome {
	var status struct {
		Status string `json:"status"`
		Height uint64 `json:"height"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return OutcomeError
	}

	if status.Height == 0 {
		return OutcomeError
	}
	if status.Status != "healthy" {
		return OutcomeWarning
	}

	return OutcomeSuccess
}

// ValidateBlocks requires a non-empty block sequence.
func ValidateBlocks(body []byte) Outcome {
	var blocks struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(body, &blocks); err != nil {
		return OutcomeError
	}

	if len(blocks.Blocks) == 0 {
		return OutcomeError
	}

	return OutcomeSuccess
}

// DefaultEndpoints returns the standard read surface the harness exercises.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Path: "/status", Validate: ValidateStatus},
		{Path: "/explorer/blocks?limit=5", Validate: ValidateBlocks},
		{Path: "/explorer/stats"},
		{Path: "/blockchain", Validate: ValidateBlocks},
	}
}
