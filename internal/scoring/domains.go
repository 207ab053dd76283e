package scoring

import "github.com/AbdouB/persona/internal/models"

// DomainScores folds trait scores into the four top-level domains. Each
// domain score is the unweighted mean of its nine constituent trait
// scores. A trait missing from the score map means the structure table and
// the active mappings disagree, which is a configuration error; it is not
// silently treated as zero.
func DomainScores(scores models.TraitScores) (models.DomainScores, error) {
	out := make(models.DomainScores, len(models.Domains))
	for _, domain := range models.Domains {
		sum := 0.0
		count := 0
		for _, triad := range models.TriadsForDomain(domain) {
			for _, trait := range triad.Traits {
				v, ok := scores[trait]
				if !ok {
					return nil, &models.ConfigError{Subject: trait, Reason: "trait missing from score map during domain aggregation"}
				}
				sum += v
				count++
			}
		}
		out[domain] = sum / float64(count)
	}
	return out, nil
}
