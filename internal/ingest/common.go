package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"project-compass/internal/database"

	"github.com/google/uuid"
)

// draftProject is what a fetcher hands to the upsert. Drafts land inactive
// so an admin reviews them before they enter the catalog.
type draftProject struct {
	ExternalID       string
	Title            string
	Description      string
	Domain           string
	TechStack        []string
	Difficulty       string
	Tags             []string
	EstimatedTime    string
	LearningOutcomes []string
	URL              string
}

func createIngestRun(ctx context.Context, db database.DB, source string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return uuid.Nil, fmt.Errorf("empty source")
	}
	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO ingest_runs (id, source, status) VALUES ($1, $2, 'running')`,
		id, source,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func finishIngestRun(ctx context.Context, db database.DB, runID uuid.UUID, status string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	_, err := db.Exec(ctx,
		`UPDATE ingest_runs SET finished_at = now(), status = $2 WHERE id = $1`,
		runID, strings.TrimSpace(status),
	)
	return err
}

func logIngest(ctx context.Context, db database.DB, runID uuid.UUID, level, message string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO ingest_logs (id, run_id, level, message) VALUES ($1, $2, $3, $4)`,
		uuid.New(), runID, level, message,
	)
	return err
}

// insertDraftProject upserts by (source, external_id). Re-ingesting never
// reactivates a draft the admin already rejected: is_active is only set on
// first insert.
func insertDraftProject(ctx context.Context, db database.DB, source string, runID uuid.UUID, in draftProject) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("empty title")
	}
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		externalID = stableExternalIDFromURL(in.URL)
	}
	if externalID == "" {
		return fmt.Errorf("no external id for %q", title)
	}

	_, err := db.Exec(ctx,
		`INSERT INTO projects
			(id, title, description, domain, tech_stack, difficulty, tags,
			 estimated_time, learning_outcomes, is_active, source, external_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,FALSE,$10,$11)
		 ON CONFLICT (source, external_id) WHERE external_id <> '' DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			domain = EXCLUDED.domain,
			tech_stack = EXCLUDED.tech_stack,
			difficulty = EXCLUDED.difficulty,
			tags = EXCLUDED.tags,
			estimated_time = EXCLUDED.estimated_time,
			learning_outcomes = EXCLUDED.learning_outcomes,
			updated_at = NOW()`,
		uuid.New(),
		title,
		strings.TrimSpace(in.Description),
		strings.TrimSpace(in.Domain),
		emptySliceIfNil(in.TechStack),
		strings.TrimSpace(in.Difficulty),
		emptySliceIfNil(in.Tags),
		strings.TrimSpace(in.EstimatedTime),
		emptySliceIfNil(in.LearningOutcomes),
		source,
		externalID,
	)
	if err != nil {
		_ = logIngest(ctx, db, runID, "error", fmt.Sprintf("upsert draft external_id=%s: %v", externalID, err))
		return err
	}
	_ = logIngest(ctx, db, runID, "info", fmt.Sprintf("draft upserted external_id=%s title=%s", externalID, title))
	return nil
}

// RecordIngestActivity leaves a row the admin activity feed reads. The CLI
// runs in its own process, so finished runs only reach the server through
// the database.
func RecordIngestActivity(ctx context.Context, db database.DB, source, detail string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return fmt.Errorf("empty source")
	}
	_, err := db.Exec(ctx,
		`INSERT INTO activity_log (id, kind, subject, detail)
		 VALUES (gen_random_uuid(), 'ingest_finished', $1, $2)`,
		source, strings.TrimSpace(detail),
	)
	return err
}

// domainByKeyword maps the tags sites use to the catalog's domain names.
var domainByKeyword = map[string]string{
	"webdev":          "Web Development",
	"javascript":      "Web Development",
	"react":           "Web Development",
	"frontend":        "Web Development",
	"node":            "Web Development",
	"machinelearning": "Artificial Intelligence",
	"ai":              "Artificial Intelligence",
	"deeplearning":    "Artificial Intelligence",
	"nlp":             "Artificial Intelligence",
	"datascience":     "Data Science",
	"python":          "Data Science",
	"android":         "Mobile Development",
	"ios":             "Mobile Development",
	"reactnative":     "Mobile Development",
	"flutter":         "Mobile Development",
	"iot":             "Internet of Things",
	"arduino":         "Internet of Things",
	"raspberrypi":     "Internet of Things",
	"blockchain":      "Blockchain",
	"solidity":        "Blockchain",
	"web3":            "Blockchain",
}

func classifyDomain(tags []string) string {
	for _, t := range tags {
		if d, ok := domainByKeyword[normalizeTag(t)]; ok {
			return d
		}
	}
	return ""
}

func classifyDifficulty(tags []string) string {
	for _, t := range tags {
		switch normalizeTag(t) {
		case "beginners", "beginner", "tutorial", "codenewbie":
			return "Beginner"
		case "advanced", "architecture", "distributedsystems":
			return "Advanced"
		}
	}
	return "Intermediate"
}

func normalizeTag(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	t = strings.TrimPrefix(t, "#")
	return strings.ReplaceAll(t, " ", "")
}

func stableExternalIDFromURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}

func emptySliceIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "ProjectCompassIngest/0.1",
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func parseRFC3339OrNil(s string) *time.Time {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	tm, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	tm = tm.UTC()
	return &tm
}
