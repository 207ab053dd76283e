package classify

import (
	"github.com/AbdouB/persona/internal/models"
	"github.com/AbdouB/persona/internal/scoring"
)

// ScoreProfile runs the full pipeline: responses -> trait scores ->
// dominant traits and domain scores -> framework labels, all parameterized
// by the effective configuration.
//
// Input and trait-mapping failures are fatal. A framework whose weight
// table is unusable loses only its own output; the error is recorded in
// FrameworkErrors and every other framework still computes.
//
// A user override in eff.UserValues replaces the computed label for that
// framework in the returned mappings. It never changes the computation
// itself: the classifier still runs on the effective weights, so weight-
// driven internals stay consistent even when the displayed label is
// pinned.
func ScoreProfile(responses models.ResponseVector, eff *models.EffectiveConfig) (*models.PersonalityProfile, error) {
	traitScores, err := scoring.TraitScores(responses, eff.TraitMappings)
	if err != nil {
		return nil, err
	}
	dominant, err := scoring.DominantTraits(traitScores)
	if err != nil {
		return nil, err
	}
	domains, err := scoring.DomainScores(traitScores)
	if err != nil {
		return nil, err
	}

	profile := &models.PersonalityProfile{
		TraitScores:    traitScores,
		DominantTraits: dominant,
		DomainScores:   domains,
	}

	fail := func(framework string, err error) {
		if profile.FrameworkErrors == nil {
			profile.FrameworkErrors = make(map[string]string)
		}
		profile.FrameworkErrors[framework] = err.Error()
	}

	mbti, err := MBTICode(traitScores, eff.Weights(models.FrameworkMBTI))
	if err != nil {
		fail(models.FrameworkMBTI, err)
	} else {
		profile.Mappings.MBTI = mbti
	}

	if enneagram, err := EnneagramType(traitScores, eff.Weights(models.FrameworkEnneagram)); err != nil {
		fail(models.FrameworkEnneagram, err)
	} else {
		profile.Mappings.Enneagram = EnneagramLabel(enneagram)
		profile.Mappings.EnneagramDetails = enneagram
	}

	if bigFive, err := BigFive(traitScores, eff.Weights(models.FrameworkBigFive)); err != nil {
		fail(models.FrameworkBigFive, err)
	} else {
		profile.Mappings.BigFive = bigFive
	}

	if holland, err := HollandCode(traitScores, eff.Weights(models.FrameworkHolland)); err != nil {
		fail(models.FrameworkHolland, err)
	} else {
		profile.Mappings.HollandCode = holland
	}

	if alignment, err := Alignment(traitScores, eff.Weights(models.FrameworkAlignment)); err != nil {
		fail(models.FrameworkAlignment, err)
	} else {
		profile.Mappings.DNDAlignment = alignment
	}

	if attachment, err := Attachment(traitScores, eff.Weights(models.FrameworkAttachment)); err != nil {
		fail(models.FrameworkAttachment, err)
	} else {
		profile.Mappings.Attachment = attachment
	}

	// Socionics derives from MBTI, so it fails when MBTI failed.
	if profile.Mappings.MBTI == "" {
		fail(models.FrameworkSocionics, &models.ConfigError{Subject: "socionics", Reason: "MBTI code unavailable"})
	} else if socionics, err := Socionics(profile.Mappings.MBTI); err != nil {
		fail(models.FrameworkSocionics, err)
	} else {
		profile.Mappings.Socionics = socionics
	}

	applyUserValues(profile, eff.UserValues)
	return profile, nil
}

// applyUserValues substitutes pinned display values over the computed
// labels. Structured outputs (enneagram details, big five scores) are left
// in place so callers can still see what the instrument measured.
func applyUserValues(profile *models.PersonalityProfile, values map[string]string) {
	for _, framework := range models.Frameworks {
		value, ok := values[framework]
		if !ok || value == "" {
			continue
		}
		switch framework {
		case models.FrameworkMBTI:
			profile.Mappings.MBTI = value
		case models.FrameworkEnneagram:
			profile.Mappings.Enneagram = value
		case models.FrameworkSocionics:
			profile.Mappings.Socionics = value
		case models.FrameworkHolland:
			profile.Mappings.HollandCode = value
		case models.FrameworkAlignment:
			profile.Mappings.DNDAlignment = value
		case models.FrameworkAttachment:
			profile.Mappings.Attachment = value
		default:
			// bigfive and integral have structured outputs with no single
			// label to pin; the override is recorded but nothing replaced.
		}
		delete(profile.FrameworkErrors, framework)
		profile.OverriddenFrameworks = append(profile.OverriddenFrameworks, framework)
	}
}
