// Package profile fetches player profiles from the RuneMetrics API, merging
// the stats endpoint and the quest-list endpoint into one record.
package profile

import (
	"context"
	"encoding/json"
	"net/url"

	"charm.land/log/v2"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/damianpoole/Loadstone/internal/config"
	"github.com/damianpoole/Loadstone/internal/fetch"
)

// RuneMetrics endpoints. The stats endpoint is load-bearing; the quests
// endpoint is best-effort.
const (
	DefaultStatsEndpoint  = "https://apps.runescape.com/runemetrics/profile/profile"
	DefaultQuestsEndpoint = "https://apps.runescape.com/runemetrics/quests"
)

// Quest status values as reported by RuneMetrics.
const (
	QuestCompleted  = "COMPLETED"
	QuestStarted    = "STARTED"
	QuestNotStarted = "NOT_STARTED"
)

// Quest is one quest-list row, reduced to the four fields callers use.
type Quest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	QuestPoints int    `json:"questPoints"`
	Members     bool   `json:"members"`
}

// Profile is the merged player record. Skills maps skill name to level, one
// entry per returned skill row. Raw retains the unfiltered stats payload for
// callers that want it.
type Profile struct {
	Name             string          `json:"name"`
	CombatLevel      int             `json:"combatLevel"`
	TotalSkill       int             `json:"totalSkill"`
	TotalXP          int64           `json:"totalXp"`
	QuestsComplete   int             `json:"questsComplete"`
	QuestsStarted    int             `json:"questsStarted"`
	QuestsNotStarted int             `json:"questsNotStarted"`
	Skills           map[string]int  `json:"skills"`
	Quests           []Quest         `json:"quests"`
	Raw              json.RawMessage `json:"raw,omitempty"`
}

// ClientConfig configures a Client. Zero values fall back to the production
// endpoints, a disabled cache, and the default logger.
type ClientConfig struct {
	StatsEndpoint  string
	QuestsEndpoint string
	Cache          config.Cache
	Logger         *log.Logger
}

// Client issues RuneMetrics requests through the caching JSON fetcher.
type Client struct {
	statsEndpoint  string
	questsEndpoint string
	cache          config.Cache
	log            *log.Logger
}

// NewClient returns a Client for the given configuration.
func NewClient(cfg ClientConfig) *Client {
	statsEndpoint := cfg.StatsEndpoint
	if statsEndpoint == "" {
		statsEndpoint = DefaultStatsEndpoint
	}
	questsEndpoint := cfg.QuestsEndpoint
	if questsEndpoint == "" {
		questsEndpoint = DefaultQuestsEndpoint
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		statsEndpoint:  statsEndpoint,
		questsEndpoint: questsEndpoint,
		cache:          cfg.Cache,
		log:            logger,
	}
}

// validate checks decoded stats payloads at the API boundary; the endpoint
// is schema-less, so shape problems surface here instead of downstream.
var validate = validator.New()

type statsPayload struct {
	Name             string       `json:"name" validate:"required"`
	CombatLevel      int          `json:"combatlevel"`
	TotalSkill       int          `json:"totalskill"`
	TotalXP          int64        `json:"totalxp"`
	QuestsComplete   int          `json:"questscomplete"`
	QuestsStarted    int          `json:"questsstarted"`
	QuestsNotStarted int          `json:"questsnotstarted"`
	SkillValues      []skillValue `json:"skillvalues" validate:"dive"`
	Error            string       `json:"error"`
}

type skillValue struct {
	ID    int   `json:"id" validate:"gte=0"`
	Level int   `json:"level"`
	XP    int64 `json:"xp"`
	Rank  int   `json:"rank"`
}

type questsPayload struct {
	Quests []struct {
		Title       string `json:"title"`
		Status      string `json:"status"`
		QuestPoints int    `json:"questPoints"`
		Members     bool   `json:"members"`
	} `json:"quests"`
}

// GetProfile fetches stats and quests for username concurrently and merges
// them. A failed or error-reporting stats request yields nil (the uniform
// "nothing to show" signal; transport errors are logged). A failed quest
// request only empties Quests; the profile is still returned.
func (c *Client) GetProfile(ctx context.Context, username string) *Profile {
	var (
		rawStats json.RawMessage
		quests   questsPayload
	)

	var g errgroup.Group
	g.Go(func() error {
		return fetch.JSON(ctx, c.statsURL(username), c.fetchOptions(), &rawStats)
	})
	g.Go(func() error {
		// Best-effort: a missing quest list never blocks the profile.
		if err := fetch.JSON(ctx, c.questsURL(username), c.fetchOptions(), &quests); err != nil {
			c.log.Warn("quest list fetch failed", "player", username, "err", err)
			quests.Quests = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		c.log.Warn("profile fetch failed", "player", username, "err", err)
		return nil
	}

	var stats statsPayload
	if err := json.Unmarshal(rawStats, &stats); err != nil {
		c.log.Warn("profile payload unreadable", "player", username, "err", err)
		return nil
	}
	if stats.Error != "" {
		// PROFILE_PRIVATE / NO_PROFILE and friends.
		c.log.Debug("profile unavailable", "player", username, "reason", stats.Error)
		return nil
	}
	if err := validate.Struct(&stats); err != nil {
		c.log.Warn("profile payload failed validation", "player", username, "err", err)
		return nil
	}

	skills := make(map[string]int, len(stats.SkillValues))
	for _, value := range stats.SkillValues {
		skills[SkillName(value.ID)] = value.Level
	}

	questList := make([]Quest, 0, len(quests.Quests))
	for _, q := range quests.Quests {
		questList = append(questList, Quest{
			Title:       q.Title,
			Status:      q.Status,
			QuestPoints: q.QuestPoints,
			Members:     q.Members,
		})
	}

	return &Profile{
		Name:             stats.Name,
		CombatLevel:      stats.CombatLevel,
		TotalSkill:       stats.TotalSkill,
		TotalXP:          stats.TotalXP,
		QuestsComplete:   stats.QuestsComplete,
		QuestsStarted:    stats.QuestsStarted,
		QuestsNotStarted: stats.QuestsNotStarted,
		Skills:           skills,
		Quests:           questList,
		Raw:              rawStats,
	}
}

func (c *Client) statsURL(username string) string {
	params := url.Values{}
	params.Set("user", username)
	params.Set("activities", "0")
	return c.statsEndpoint + "?" + params.Encode()
}

func (c *Client) questsURL(username string) string {
	params := url.Values{}
	params.Set("user", username)
	return c.questsEndpoint + "?" + params.Encode()
}

func (c *Client) fetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Cache = c.cache
	opts.Logger = c.log
	return opts
}
