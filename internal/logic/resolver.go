package logic

import (
	"strings"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// ResolveUser looks up rawUsername case-insensitively after trimming.
// It is a linear scan over every key; the maps hold a few thousand users and
// resolution happens once per login. When several keys differ only by case
// the lexicographically smallest one wins, so the result never depends on
// map iteration order. Null records never match.
func ResolveUser(ds *models.Dataset, rawUsername string) (*models.UserRecord, string, bool) {
	if ds == nil {
		return nil, "", false
	}
	needle := strings.ToLower(strings.TrimSpace(rawUsername))
	if needle == "" {
		return nil, "", false
	}

	var (
		bestKey string
		found   bool
	)
	for key, rec := range ds.Users {
		if rec == nil || strings.ToLower(key) != needle {
			continue
		}
		if !found || key < bestKey {
			bestKey = key
			found = true
		}
	}
	if !found {
		return nil, "", false
	}
	return ds.Users[bestKey], bestKey, true
}

// ProcessReport builds the report shell for one login attempt.
func ProcessReport(ds *models.Dataset, username string, pc models.PlayerCount) models.ProcessedReport {
	report := models.ProcessedReport{
		Username:    username,
		PlayerCount: pc,
	}
	if ds != nil {
		report.GlobalSummary = ds.Summary
		report.Rankings = ds.Rankings.Clone()
	}

	rec, key, ok := ResolveUser(ds, username)
	if !ok {
		return report
	}

	report.UserData = rec
	report.IsFound = true
	switch {
	case rec != nil && rec.Metadata.UserKey != "":
		report.Username = rec.Metadata.UserKey
	default:
		report.Username = key
	}
	return report
}
