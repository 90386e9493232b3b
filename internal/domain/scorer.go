package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/pubsub"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type ScorerDomain interface {
	HandleEvent(ctx context.Context, pack *pubsub.Pack, t time.Time)
}

type scorerDomain struct {
	questRepo     repository.QuestRepository
	userQuestRepo repository.UserQuestRepository
	profileRepo   repository.ProfileRepository
	redisClient   xredis.Client
}

func NewScorerDomain(
	questRepo repository.QuestRepository,
	userQuestRepo repository.UserQuestRepository,
	profileRepo repository.ProfileRepository,
	redisClient xredis.Client,
) *scorerDomain {
	return &scorerDomain{
		questRepo:     questRepo,
		userQuestRepo: userQuestRepo,
		profileRepo:   profileRepo,
		redisClient:   redisClient,
	}
}

// HandleEvent adds the points of a completed quest to the farmer's
// sustainability score. Broken events are logged and dropped. A completion is
// credited at most once, redelivered events are dropped.
func (d *scorerDomain) HandleEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.QuestCompletedEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal quest completed event: %v", err)
		d.count("dropped")
		return
	}

	if event.UserID == "" {
		xcontext.Logger(ctx).Warnf("Quest completed event without user, quest %s", event.QuestID)
		d.count("dropped")
		return
	}

	// The points are read from the store, the points carried by the event
	// are only informative.
	quest, err := d.questRepo.GetByID(ctx, event.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Drop quest completed event of unknown quest %s", event.QuestID)
			d.count("dropped")
		} else {
			xcontext.Logger(ctx).Errorf("Cannot get quest %s: %v", event.QuestID, err)
			d.count("failed")
		}
		return
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	marked, err := d.userQuestRepo.MarkScored(ctx, event.UserID, quest.ID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark quest %s of user %s as scored: %v", quest.ID, event.UserID, err)
		d.count("failed")
		return
	}

	if !marked {
		xcontext.Logger(ctx).Warnf("Drop quest completed event of user %s, quest %s is not completed or already scored",
			event.UserID, quest.ID)
		d.count("dropped")
		return
	}

	if err := d.profileRepo.IncreaseScore(ctx, event.UserID, quest.Points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase score of user %s: %v", event.UserID, err)
		d.count("failed")
		return
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit score of user %s: %v", event.UserID, err)
		d.count("failed")
		return
	}

	common.InvalidateSnapshots(ctx, d.redisClient, common.RedisKeyLeaderBoard)
	d.count("applied")
	xcontext.Logger(ctx).Infof("User %s earned %d points from quest %s (published at %s)",
		event.UserID, quest.Points, quest.ID, t.Format(time.RFC3339))
}

func (d *scorerDomain) count(result string) {
	common.PromCounters[common.ScoreEventTotal].WithLabelValues(result).Inc()
}
