package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/Rana718/ghseed/internal/config"
	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/models"
)

const (
	lowercase        = "abcdefghijklmnopqrstuvwxyz"
	repoSuffixLength = 6
)

// Generator fabricates datasets. It holds its own random source, so two
// generators with the same seed and text source produce the same values.
type Generator struct {
	rand *rand.Rand
	text TextSource
}

// NewGenerator seeds a generator; seed 0 seeds from the clock. A nil text
// source falls back to gofakeit with the same seed.
func NewGenerator(seed int64, text TextSource) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if text == nil {
		text = NewFakerText(seed)
	}
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		text: text,
	}
}

// RandomChars returns n random lowercase ASCII letters.
func (g *Generator) RandomChars(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = lowercase[g.rand.Intn(len(lowercase))]
	}
	return string(b)
}

// RandomDigits returns a number with exactly n decimal digits.
func (g *Generator) RandomDigits(n int) int64 {
	low := pow10(n - 1)
	return low + g.rand.Int63n(9*low)
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// RepoName returns "word/word-word-xxxxxx".
func (g *Generator) RepoName() string {
	return fmt.Sprintf("%s/%s-%s-%s", g.word(), g.word(), g.word(), g.RandomChars(repoSuffixLength))
}

var slugSeparators = strings.NewReplacer("-", "", "_", "")

// word slugs a text-source word down to [a-z0-9]+.
func (g *Generator) word() string {
	w := slugSeparators.Replace(slug.Make(g.text.Word()))
	if w == "" {
		return g.RandomChars(5)
	}
	return w
}

func (g *Generator) uniqueUsername(used map[string]struct{}, length int) string {
	for {
		name := g.RandomChars(length)
		if _, taken := used[name]; !taken {
			used[name] = struct{}{}
			return name
		}
	}
}

func (g *Generator) uniqueRepoName(used map[string]struct{}) string {
	for {
		name := g.RepoName()
		if _, taken := used[name]; !taken {
			used[name] = struct{}{}
			return name
		}
	}
}

// externalIDs hands out external identifiers for one run.
type externalIDs interface {
	Next() int64
	// Counter is the value the next run should start from.
	Counter() int64
}

type sequentialIDs struct {
	next int64
}

func (s *sequentialIDs) Next() int64 {
	id := s.next
	s.next++
	return id
}

func (s *sequentialIDs) Counter() int64 { return s.next }

type randomIDs struct {
	gen    *Generator
	digits int
	start  int64
	used   map[int64]struct{}
}

// Next draws until it finds an id not handed out earlier in the run.
func (r *randomIDs) Next() int64 {
	for {
		id := r.gen.RandomDigits(r.digits)
		if _, taken := r.used[id]; !taken {
			r.used[id] = struct{}{}
			return id
		}
	}
}

func (r *randomIDs) Counter() int64 { return r.start }

func (g *Generator) externalIDs(cfg config.SeedConfig) externalIDs {
	if cfg.ExternalIDStrategy == config.StrategyRandom {
		return &randomIDs{
			gen:    g,
			digits: cfg.ExternalIDDigits,
			start:  cfg.ExternalIDStart,
			used:   make(map[int64]struct{}),
		}
	}
	return &sequentialIDs{next: cfg.ExternalIDStart}
}

// CheckCapacity rejects runs whose unique values cannot fit the configured
// widths.
func CheckCapacity(cfg config.SeedConfig) error {
	if cfg.UsernameLength < 14 {
		space := math.Pow(float64(len(lowercase)), float64(cfg.UsernameLength))
		if float64(cfg.UserCount) > space {
			return seederrors.NewConfigurationError("username space exhausted",
				fmt.Sprintf("%d users need unique usernames but username_length %d allows %.0f",
					cfg.UserCount, cfg.UsernameLength, space))
		}
	}

	if cfg.ExternalIDStrategy == config.StrategyRandom {
		needed := int64(cfg.UserCount) * int64(cfg.ReposPerUser) *
			(1 + int64(cfg.ReleasesPerRepo))
		space := 9 * pow10(cfg.ExternalIDDigits-1)
		if needed > space {
			return seederrors.NewConfigurationError("external id space exhausted",
				fmt.Sprintf("up to %d ids needed but external_id_digits %d allows %d",
					needed, cfg.ExternalIDDigits, space))
		}
	} else {
		needed := int64(cfg.UserCount) * int64(cfg.ReposPerUser) *
			(1 + int64(cfg.ReleasesPerRepo))
		if cfg.ExternalIDStart+needed-1 > math.MaxInt32 {
			return seederrors.NewConfigurationError("external id space exhausted",
				fmt.Sprintf("%d ids from external_id_start %d overflow the 32-bit id columns",
					needed, cfg.ExternalIDStart))
		}
	}

	if cfg.FirstUserID > 0 {
		return checkUserIDs(cfg.FirstUserID, cfg.UserCount)
	}
	return nil
}

// checkUserIDs rejects user ids past the 32-bit user_id columns.
func checkUserIDs(first int64, count int) error {
	if first+int64(count)-1 > math.MaxInt32 {
		return seederrors.NewConfigurationError("user id space exhausted",
			fmt.Sprintf("%d users from id %d overflow the 32-bit user_id columns", count, first))
	}
	return nil
}

// Build fabricates a dataset without touching any store.
func (g *Generator) Build(plan Plan) (*Dataset, error) {
	cfg := plan.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := CheckCapacity(cfg); err != nil {
		return nil, err
	}

	now := plan.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	firstUserID := plan.FirstUserID
	if firstUserID <= 0 {
		firstUserID = 1
	}
	if err := checkUserIDs(firstUserID, cfg.UserCount); err != nil {
		return nil, err
	}

	ids := g.externalIDs(cfg)
	usernames := make(map[string]struct{}, cfg.UserCount)
	repoNames := make(map[string]struct{}, cfg.UserCount*cfg.ReposPerUser)
	ds := &Dataset{}

	for i := 0; i < cfg.UserCount; i++ {
		userID := firstUserID + int64(i)
		username := g.uniqueUsername(usernames, cfg.UsernameLength)
		domain := g.RandomChars(cfg.DomainLength) + ".com"
		ds.Users = append(ds.Users, models.NewUser(userID, username, domain, now))

		repos := make([]*models.Repository, 0, cfg.ReposPerUser)
		snapshot := make(map[string]models.RepoSnapshot, cfg.ReposPerUser)
		for j := 0; j < cfg.ReposPerUser; j++ {
			githubID := ids.Next()
			name := g.uniqueRepoName(repoNames)
			repos = append(repos, models.NewRepository(githubID, name, userID, g.RandomDigits(cfg.HookDigits), now))

			key := models.SnapshotKey(githubID)
			snapshot[key] = models.RepoSnapshot{
				ID:            key,
				FullName:      name,
				Description:   g.text.Sentence(),
				DefaultBranch: models.DefaultBranch,
			}
		}
		ds.Generated += len(repos)

		account := models.NewRemoteAccount(userID, cfg.ClientID, now)
		account.SetSnapshot(snapshot, now)
		ds.RemoteAccounts = append(ds.RemoteAccounts, account)

		for _, repo := range g.sample(repos, cfg.EnabledReposPerUser, cfg.EnabledSampling) {
			ds.Repositories = append(ds.Repositories, repo)
			ds.Releases = append(ds.Releases, g.releases(repo, cfg.ReleasesPerRepo, ids, now)...)
		}
	}

	ds.NextExternalID = ids.Counter()
	return ds, nil
}

// sample picks the repositories to persist. With replacement, repeated draws
// of the same repository collapse into one.
func (g *Generator) sample(repos []*models.Repository, n int, mode config.Sampling) []*models.Repository {
	if n <= 0 || len(repos) == 0 {
		return nil
	}

	if mode == config.SamplingDistinct {
		if n > len(repos) {
			n = len(repos)
		}
		picked := make([]*models.Repository, 0, n)
		for _, idx := range g.rand.Perm(len(repos))[:n] {
			picked = append(picked, repos[idx])
		}
		return picked
	}

	seen := make(map[uuid.UUID]struct{}, n)
	picked := make([]*models.Repository, 0, n)
	for i := 0; i < n; i++ {
		repo := repos[g.rand.Intn(len(repos))]
		if _, dup := seen[repo.ID]; dup {
			continue
		}
		seen[repo.ID] = struct{}{}
		picked = append(picked, repo)
	}
	return picked
}

func (g *Generator) releases(repo *models.Repository, count int, ids externalIDs, now time.Time) []*models.Release {
	releases := make([]*models.Release, 0, count)
	for k := 0; k < count; k++ {
		status := models.ReleaseStatuses[g.rand.Intn(len(models.ReleaseStatuses))]
		tag := fmt.Sprintf("v1.%d.%d", k, g.rand.Intn(10))
		release := models.NewRelease(repo.ID, ids.Next(), tag, status, now)

		switch status {
		case models.StatusFailed:
			release.Errors = models.JSONMap{
				"errors": []any{map[string]any{"message": g.text.Sentence()}},
			}
		case models.StatusPublished:
			recordID := uuid.New()
			release.RecordID = &recordID
		}
		releases = append(releases, release)
	}
	return releases
}
