package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/domain/questutil"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/pubsub"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type QuestDomain interface {
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetActive(context.Context, *model.GetActiveQuestsRequest) (*model.GetActiveQuestsResponse, error)
	Start(context.Context, *model.StartQuestRequest) (*model.StartQuestResponse, error)
	ToggleTask(context.Context, *model.ToggleTaskRequest) (*model.ToggleTaskResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
}

type questDomain struct {
	questRepo            repository.QuestRepository
	questTaskRepo        repository.QuestTaskRepository
	userQuestRepo        repository.UserQuestRepository
	userTaskProgressRepo repository.UserTaskProgressRepository
	redisClient          xredis.Client
	publisher            pubsub.Publisher
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	questTaskRepo repository.QuestTaskRepository,
	userQuestRepo repository.UserQuestRepository,
	userTaskProgressRepo repository.UserTaskProgressRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) *questDomain {
	return &questDomain{
		questRepo:            questRepo,
		questTaskRepo:        questTaskRepo,
		userQuestRepo:        userQuestRepo,
		userTaskProgressRepo: userTaskProgressRepo,
		redisClient:          redisClient,
		publisher:            publisher,
	}
}

type questCatalog struct {
	Quests []entity.Quest     `json:"quests"`
	Tasks  []entity.QuestTask `json:"tasks"`
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	if !questutil.ValidStatusFilter(req.Status) {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	quests, err := d.reconcileAll(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	searched := questutil.Search(quests, req.Q)
	return &model.GetListQuestResponse{
		Quests: questutil.FilterByStatus(searched, req.Status),
		Counts: questutil.CountByStatus(searched),
	}, nil
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	quests, err := d.reconcileAll(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	for _, q := range quests {
		if q.ID == req.ID {
			return &model.GetQuestResponse{Quest: q}, nil
		}
	}

	return nil, errorx.New(errorx.NotFound, "Not found quest")
}

func (d *questDomain) GetActive(
	ctx context.Context, req *model.GetActiveQuestsRequest,
) (*model.GetActiveQuestsResponse, error) {
	quests, err := d.reconcileAll(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetActiveQuestsResponse{Quests: questutil.Active(quests)}, nil
}

func (d *questDomain) Start(
	ctx context.Context, req *model.StartQuestRequest,
) (*model.StartQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.getQuest(ctx, req.QuestID); err != nil {
		return nil, err
	}

	current, err := d.getUserQuest(ctx, userID, req.QuestID)
	if err != nil {
		return nil, err
	}

	if current != nil && current.Status == entity.QuestCompleted {
		return nil, errorx.New(errorx.QuestCompleted, "The quest is already completed")
	}

	userQuest := &entity.UserQuest{
		UserID:    userID,
		QuestID:   req.QuestID,
		Status:    entity.QuestInProgress,
		Progress:  xcontext.Configs(ctx).Quest.StartProgress,
		StartedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}

	started, err := d.userQuestRepo.Start(ctx, userQuest)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot start quest: %v", err)
		return nil, errorx.Unknown
	}

	if !started {
		// Either a concurrent Complete won, or the row already held these values.
		current, err := d.getUserQuest(ctx, userID, req.QuestID)
		if err != nil {
			return nil, err
		}

		if current == nil || current.Status == entity.QuestCompleted {
			return nil, errorx.New(errorx.QuestCompleted, "The quest is already completed")
		}

		userQuest = current
	}

	common.InvalidateSnapshots(ctx, d.redisClient, common.RedisKeyUserQuests(userID))

	return &model.StartQuestResponse{UserQuest: model.ConvertUserQuest(userQuest)}, nil
}

func (d *questDomain) ToggleTask(
	ctx context.Context, req *model.ToggleTaskRequest,
) (*model.ToggleTaskResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.TaskID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty task id")
	}

	if _, err := d.getQuest(ctx, req.QuestID); err != nil {
		return nil, err
	}

	task, err := d.questTaskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	if task.QuestID != req.QuestID {
		return nil, errorx.New(errorx.TaskNotInQuest, "The task does not belong to the quest")
	}

	current, err := d.getUserQuest(ctx, userID, req.QuestID)
	if err != nil {
		return nil, err
	}

	if current != nil && current.Status == entity.QuestCompleted {
		return nil, errorx.New(errorx.QuestCompleted, "The quest is already completed")
	}

	progress := &entity.UserTaskProgress{
		UserID:      userID,
		TaskID:      req.TaskID,
		QuestID:     req.QuestID,
		IsCompleted: req.IsCompleted,
	}

	if req.IsCompleted {
		progress.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	if err := d.userTaskProgressRepo.Upsert(ctx, progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle task: %v", err)
		return nil, errorx.Unknown
	}

	common.InvalidateSnapshots(ctx, d.redisClient, common.RedisKeyUserTaskProgress(userID))

	return &model.ToggleTaskResponse{TaskProgress: model.ConvertUserTaskProgress(progress)}, nil
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	quest, err := d.getQuest(ctx, req.QuestID)
	if err != nil {
		return nil, err
	}

	var userQuest *entity.UserQuest
	var tasks []entity.QuestTask
	var taskProgress []entity.UserTaskProgress

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		userQuest, err = d.getUserQuest(egCtx, userID, req.QuestID)
		return err
	})

	eg.Go(func() error {
		var err error
		tasks, err = d.questTaskRepo.GetByQuestID(egCtx, req.QuestID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get tasks of quest: %v", err)
			return errorx.Unknown
		}

		return nil
	})

	eg.Go(func() error {
		var err error
		taskProgress, err = d.userTaskProgressRepo.GetByUserAndQuest(egCtx, userID, req.QuestID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get task progress: %v", err)
			return errorx.Unknown
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if userQuest == nil {
		return nil, errorx.New(errorx.QuestNotStarted, "The quest is not started yet")
	}

	if userQuest.Status == entity.QuestCompleted {
		return &model.CompleteQuestResponse{UserQuest: model.ConvertUserQuest(userQuest)}, nil
	}

	reconciled := questutil.Reconcile(*quest, tasks, userQuest, taskProgress)
	if !questutil.RequiredTasksDone(reconciled) {
		return nil, errorx.New(errorx.TasksIncomplete, "Please complete all required tasks before")
	}

	userQuest.Status = entity.QuestCompleted
	userQuest.Progress = 100
	userQuest.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	completed, err := d.userQuestRepo.Complete(ctx, userID, req.QuestID, userQuest.Progress, userQuest.CompletedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete quest: %v", err)
		return nil, errorx.Unknown
	}

	if !completed {
		// Another request completed the quest first and already announced it.
		stored, err := d.getUserQuest(ctx, userID, req.QuestID)
		if err != nil {
			return nil, err
		}

		if stored == nil {
			return nil, errorx.New(errorx.QuestNotStarted, "The quest is not started yet")
		}

		return &model.CompleteQuestResponse{UserQuest: model.ConvertUserQuest(stored)}, nil
	}

	common.InvalidateSnapshots(ctx, d.redisClient,
		common.RedisKeyUserQuests(userID), common.RedisKeyLeaderBoard)
	common.PromCounters[common.QuestCompletedTotal].WithLabelValues(quest.Category).Inc()

	d.publishCompleted(ctx, quest, userQuest)

	return &model.CompleteQuestResponse{UserQuest: model.ConvertUserQuest(userQuest)}, nil
}

// publishCompleted hands the score increment over to the scorer. The quest
// stays completed even if the event cannot be sent.
func (d *questDomain) publishCompleted(ctx context.Context, quest *entity.Quest, userQuest *entity.UserQuest) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(model.QuestCompletedEvent{
		UserID:      userQuest.UserID,
		QuestID:     quest.ID,
		Points:      quest.Points,
		CompletedAt: model.FormatNullTime(userQuest.CompletedAt),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal quest completed event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Quest.CompletedTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(userQuest.UserID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish quest completed event of user %s, quest %s: %v",
			userQuest.UserID, quest.ID, err)
	}
}

func (d *questDomain) getQuest(ctx context.Context, questID string) (*entity.Quest, error) {
	if questID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty quest id")
	}

	quest, err := d.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	return quest, nil
}

// getUserQuest returns nil if the user never started the quest.
func (d *questDomain) getUserQuest(ctx context.Context, userID, questID string) (*entity.UserQuest, error) {
	userQuest, err := d.userQuestRepo.Get(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user quest: %v", err)
		return nil, errorx.Unknown
	}

	return userQuest, nil
}

// reconcileAll waits for every input before reconciling, a failed read fails
// the whole list. An anonymous user sees every quest as recommended.
func (d *questDomain) reconcileAll(ctx context.Context, userID string) ([]model.Quest, error) {
	var catalog questCatalog
	var userQuests []entity.UserQuest
	var taskProgress []entity.UserTaskProgress

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		catalog, err = d.loadCatalog(egCtx)
		return err
	})

	if userID != "" {
		eg.Go(func() error {
			var err error
			userQuests, err = common.LoadSnapshot(egCtx, d.redisClient, common.RedisKeyUserQuests(userID),
				func(ctx context.Context) ([]entity.UserQuest, error) {
					return d.userQuestRepo.GetByUserID(ctx, userID)
				})
			return err
		})

		eg.Go(func() error {
			var err error
			taskProgress, err = common.LoadSnapshot(egCtx, d.redisClient, common.RedisKeyUserTaskProgress(userID),
				func(ctx context.Context) ([]entity.UserTaskProgress, error) {
					return d.userTaskProgressRepo.GetByUserID(ctx, userID)
				})
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load quests of user %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	return questutil.ReconcileAll(catalog.Quests, catalog.Tasks, userQuests, taskProgress), nil
}

func (d *questDomain) loadCatalog(ctx context.Context) (questCatalog, error) {
	return common.LoadSnapshot(ctx, d.redisClient, common.RedisKeyQuests,
		func(ctx context.Context) (questCatalog, error) {
			var catalog questCatalog

			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				var err error
				catalog.Quests, err = d.questRepo.GetList(egCtx)
				return err
			})

			eg.Go(func() error {
				var err error
				catalog.Tasks, err = d.questTaskRepo.GetAll(egCtx)
				return err
			})

			return catalog, eg.Wait()
		})
}
