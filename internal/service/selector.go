package service

import "github.com/fleveque/logo-fetch/internal/model"

// Score weights. A wordmark outranks any combination of the other bonuses
// (100 > 50+25) and mode outranks format (50 > 25).
const (
	scoreWordmark = 100
	scoreMode     = 50
	scoreSVG      = 25
)

// PickBest returns the best variant for the given preferences, or nil when
// variants is empty. If any wordmark exists, icons are not considered.
// Ties go to the earliest variant in input order.
func PickBest(variants []model.LogoVariant, prefs model.SelectionPreferences) *model.LogoVariant {
	if len(variants) == 0 {
		return nil
	}

	pool := wordmarks(variants)
	if len(pool) == 0 {
		pool = variants
	}

	best := 0
	bestScore := score(&pool[0], prefs)
	for i := 1; i < len(pool); i++ {
		// Strict > keeps the earlier candidate on ties.
		if s := score(&pool[i], prefs); s > bestScore {
			best, bestScore = i, s
		}
	}

	picked := pool[best]
	return &picked
}

func wordmarks(variants []model.LogoVariant) []model.LogoVariant {
	var out []model.LogoVariant
	for _, v := range variants {
		if v.Kind == model.KindWordmark {
			out = append(out, v)
		}
	}
	return out
}

func score(v *model.LogoVariant, prefs model.SelectionPreferences) int {
	s := 0
	if v.Kind == model.KindWordmark {
		s += scoreWordmark
	}
	if v.Mode != "" && v.Mode == prefs.PreferredMode {
		s += scoreMode
	}
	if prefs.PreferSVG && v.Format == "svg" {
		s += scoreSVG
	}
	return s
}
