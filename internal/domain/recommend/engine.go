package recommend

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	"project-compass/internal/domain/project"
)

// ErrNegativeLimit is the only error the ranker produces. Every other
// degenerate input (nil profile, empty catalog, empty profile fields) has
// a well-defined non-error result.
var ErrNegativeLimit = errors.New("negative limit")

const (
	domainWeight  = 50
	skillWeight   = 20
	tagWeight     = 15
	academicBoost = 10
	noviceBoost   = 15
	expertBoost   = 10
)

const academicBranchCS = "Computer Science"

var boostedDomains = []string{"Web Development", "Artificial Intelligence"}

// Profile is the slice of a user the ranker looks at. A nil *Profile means
// an anonymous visitor. Nil Interests/Skills mean the field was never set,
// which matters for the difficulty boosts; for the fallback decision an
// empty and an absent interests list behave the same.
type Profile struct {
	Interests      []string
	Skills         []string
	AcademicBranch string
}

// Shuffle permutes n elements via swap. It exists so tests can seed the
// fallback path; the default is rand.Shuffle, which is a uniform
// Fisher-Yates permutation.
type Shuffle func(n int, swap func(i, j int))

type Ranker struct {
	shuffle Shuffle
}

func NewRanker(shuffle Shuffle) *Ranker {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &Ranker{shuffle: shuffle}
}

// Rank scores the catalog against the profile and returns at most limit
// records, best first, ties in catalog order. Without any declared
// interest it returns a uniformly shuffled prefix instead: variety beats a
// zero-signal ranking for cold users.
func (r *Ranker) Rank(p *Profile, catalog []project.Project, limit int) ([]project.Project, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}
	if limit == 0 || len(catalog) == 0 {
		return []project.Project{}, nil
	}

	if !HasInterests(p) {
		shuffled := make([]project.Project, len(catalog))
		copy(shuffled, catalog)
		r.shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if limit < len(shuffled) {
			shuffled = shuffled[:limit]
		}
		return shuffled, nil
	}

	type candidate struct {
		rec   project.Project
		score int
	}
	scored := make([]candidate, 0, len(catalog))
	for _, rec := range catalog {
		scored = append(scored, candidate{rec: rec, score: Score(p, rec)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := limit
	if n > len(scored) {
		n = len(scored)
	}
	out := make([]project.Project, 0, n)
	for _, c := range scored[:n] {
		out = append(out, c.rec)
	}
	return out, nil
}

// Score computes the additive match score for one record. Exported so the
// recommendation usecase can surface it next to the explanation.
func Score(p *Profile, rec project.Project) int {
	if p == nil {
		return 0
	}

	score := 0

	if containsFold(p.Interests, rec.Domain) {
		score += domainWeight
	}

	for _, tech := range rec.TechStack {
		if anyCrossContains(p.Skills, tech) {
			score += skillWeight
		}
	}

	for _, tag := range rec.Tags {
		if anyCrossContains(p.Interests, tag) {
			score += tagWeight
		}
	}

	// Branch comparison is deliberately case-sensitive, unlike the list
	// matches above.
	if p.AcademicBranch == academicBranchCS {
		for _, d := range boostedDomains {
			if rec.Domain == d {
				score += academicBoost
				break
			}
		}
	}

	if p.Skills != nil && len(p.Skills) < 3 && rec.Difficulty == project.DifficultyBeginner {
		score += noviceBoost
	}
	if p.Skills != nil && len(p.Skills) > 5 && rec.Difficulty == project.DifficultyAdvanced {
		score += expertBoost
	}

	return score
}

// Explain rebuilds the match signals for one record and renders them as a
// short subtitle. It never reads the ranker's score; the two stay
// independently testable. At most two reasons and two tech names survive
// so the string stays UI-sized.
func Explain(rec project.Project, p *Profile) string {
	if p == nil {
		return "Popular project"
	}

	reasons := make([]string, 0, 2)

	if containsFold(p.Interests, rec.Domain) {
		reasons = append(reasons, "matches your interest in "+rec.Domain)
	}

	matched := make([]string, 0, 2)
	for _, tech := range rec.TechStack {
		if anyCrossContains(p.Skills, tech) {
			matched = append(matched, tech)
			if len(matched) == 2 {
				break
			}
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "uses "+strings.Join(matched, ", ")+" which you know")
	}

	if len(reasons) == 0 {
		return "Recommended for you"
	}
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return "Recommended because it " + strings.Join(reasons, " and ")
}

// HasInterests reports whether the profile carries at least one non-blank
// interest, the switch between the scored and the shuffled path. Callers
// that cache results use it too: only the scored path is deterministic.
func HasInterests(p *Profile) bool {
	if p == nil {
		return false
	}
	for _, it := range p.Interests {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}

// crossContains reports a case-insensitive substring match in either
// direction. Both the ranker and the explainer go through it so they
// always agree on what "matches" means.
func crossContains(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func anyCrossContains(list []string, v string) bool {
	for _, it := range list {
		if crossContains(it, v) {
			return true
		}
	}
	return false
}

// containsFold is the exact (not substring) case-insensitive list match
// used only by the domain signal.
func containsFold(list []string, v string) bool {
	for _, it := range list {
		if strings.EqualFold(it, v) {
			return true
		}
	}
	return false
}
