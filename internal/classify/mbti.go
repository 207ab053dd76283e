package classify

import "github.com/AbdouB/persona/internal/models"

// mbtiDimensions fixes evaluation order and the letter pair per dimension.
// The weighted sum measures the first letter's pole; a sum exactly at the
// threshold resolves to the first letter (E, S, T, J).
var mbtiDimensions = []struct {
	name    string
	letters [2]byte
}{
	{"EI", [2]byte{'E', 'I'}},
	{"SN", [2]byte{'S', 'N'}},
	{"TF", [2]byte{'T', 'F'}},
	{"JP", [2]byte{'J', 'P'}},
}

// DefaultMBTIThreshold is used when a dimension carries no threshold of
// its own.
const DefaultMBTIThreshold = 5.0

// MBTICode computes the four-letter MBTI code from trait scores and the
// effective MBTI weight table.
func MBTICode(scores models.TraitScores, weights models.FrameworkWeights) (string, error) {
	code := make([]byte, 0, 4)
	for _, d := range mbtiDimensions {
		dim, ok := weights[d.name]
		if !ok {
			return "", &models.ConfigError{Subject: "mbti." + d.name, Reason: "dimension missing from weight table"}
		}
		score, err := weightedScore(scores, dim, "mbti."+d.name)
		if err != nil {
			return "", err
		}
		if score >= dimensionThreshold(dim, DefaultMBTIThreshold) {
			code = append(code, d.letters[0])
		} else {
			code = append(code, d.letters[1])
		}
	}
	return string(code), nil
}
