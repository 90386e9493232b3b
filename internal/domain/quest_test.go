package domain

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/pubsub"
	"github.com/greenquest-lab/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestQuestDomain(redisClient *testutil.MockRedisClient, publisher *testutil.MockPublisher) *questDomain {
	return NewQuestDomain(
		repository.NewQuestRepository(),
		repository.NewQuestTaskRepository(),
		repository.NewUserQuestRepository(),
		repository.NewUserTaskProgressRepository(),
		redisClient,
		publisher,
	)
}

// gatedUserQuestRepository holds the first n readers of a user quest until
// all of them have read, so they act on the same snapshot.
type gatedUserQuestRepository struct {
	repository.UserQuestRepository

	mu      sync.Mutex
	waiting int
	release chan struct{}
}

func newGatedUserQuestRepository(n int) *gatedUserQuestRepository {
	return &gatedUserQuestRepository{
		UserQuestRepository: repository.NewUserQuestRepository(),
		waiting:             n,
		release:             make(chan struct{}),
	}
}

func (r *gatedUserQuestRepository) Get(ctx context.Context, userID, questID string) (*entity.UserQuest, error) {
	row, err := r.UserQuestRepository.Get(ctx, userID, questID)

	r.mu.Lock()
	r.waiting--
	if r.waiting == 0 {
		close(r.release)
	}
	gated := r.waiting >= 0
	r.mu.Unlock()

	if gated {
		<-r.release
	}

	return row, err
}

// staleUserQuestRepository answers the first read with an in-progress copy of
// the stored row.
type staleUserQuestRepository struct {
	repository.UserQuestRepository
	served bool
}

func (r *staleUserQuestRepository) Get(ctx context.Context, userID, questID string) (*entity.UserQuest, error) {
	row, err := r.UserQuestRepository.Get(ctx, userID, questID)
	if err != nil || r.served {
		return row, err
	}

	r.served = true
	stale := *row
	stale.Status = entity.QuestInProgress
	return &stale, nil
}

func questByID(quests []model.Quest, id string) model.Quest {
	for _, q := range quests {
		if q.ID == id {
			return q
		}
	}

	return model.Quest{}
}

func Test_questDomain_GetList_Anonymous(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	resp, err := domain.GetList(ctx, &model.GetListQuestRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 3)
	for _, q := range resp.Quests {
		require.Equal(t, string(entity.QuestRecommended), q.Status)
		require.Zero(t, q.Progress)
	}

	require.Equal(t, 3, resp.Counts["recommended"])
	require.Equal(t, 0, resp.Counts["in-progress"])
	require.Equal(t, 3, resp.Counts["all"])
}

func Test_questDomain_GetList_User(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	resp, err := domain.GetList(ctx, &model.GetListQuestRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 3)

	quest1 := questByID(resp.Quests, testutil.Quest1.ID)
	require.Equal(t, string(entity.QuestInProgress), quest1.Status)
	require.Equal(t, 33, quest1.Progress)
	require.Equal(t, 1, quest1.CompletedTasks)
	require.Equal(t, 3, quest1.TotalTasks)
	require.Equal(t, 1, quest1.NextTaskIndex)
	require.False(t, quest1.CanComplete)

	quest2 := questByID(resp.Quests, testutil.Quest2.ID)
	require.Equal(t, string(entity.QuestRecommended), quest2.Status)
	require.Zero(t, quest2.Progress)

	quest3 := questByID(resp.Quests, testutil.Quest3.ID)
	require.Equal(t, string(entity.QuestCompleted), quest3.Status)
	require.Equal(t, 100, quest3.Progress)

	require.Equal(t, map[string]int{
		"all":         3,
		"recommended": 1,
		"in-progress": 1,
		"completed":   1,
	}, resp.Counts)

	resp, err = domain.GetList(ctx, &model.GetListQuestRequest{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest3.ID, resp.Quests[0].ID)

	resp, err = domain.GetList(ctx, &model.GetListQuestRequest{Q: "water"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest2.ID, resp.Quests[0].ID)
	require.Equal(t, 1, resp.Counts["all"])

	_, err = domain.GetList(ctx, &model.GetListQuestRequest{Status: "archived"})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_GetList_UsesSnapshot(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	redisClient := &testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			if key != common.RedisKeyQuests {
				return redis.Nil
			}

			b, err := json.Marshal(questCatalog{Quests: []entity.Quest{testutil.Quest3}})
			if err != nil {
				return err
			}

			return json.Unmarshal(b, v)
		},
	}

	domain := newTestQuestDomain(redisClient, &testutil.MockPublisher{})
	resp, err := domain.GetList(ctx, &model.GetListQuestRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest3.ID, resp.Quests[0].ID)
	require.Equal(t, string(entity.QuestCompleted), resp.Quests[0].Status)
}

func Test_questDomain_Get(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	resp, err := domain.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Quest1.Title, resp.Quest.Title)
	require.Len(t, resp.Quest.Tasks, 3)
	require.Equal(t, testutil.Task1_1.ID, resp.Quest.Tasks[0].ID)
	require.True(t, resp.Quest.Tasks[0].IsCompleted)
	require.Equal(t, "One metre deep", resp.Quest.Tasks[1].Description)

	_, err = domain.Get(ctx, &model.GetQuestRequest{ID: "unknown"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	_, err = domain.Get(ctx, &model.GetQuestRequest{})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_GetActive(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	resp, err := domain.GetActive(ctx, &model.GetActiveQuestsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest1.ID, resp.Quests[0].ID)
}

func Test_questDomain_Start_Idempotent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.UserID)
	testutil.CreateFixtureDb(ctx)

	var deleted []string
	redisClient := &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	domain := newTestQuestDomain(redisClient, &testutil.MockPublisher{})
	for i := 0; i < 2; i++ {
		resp, err := domain.Start(ctx, &model.StartQuestRequest{QuestID: testutil.Quest2.ID})
		require.NoError(t, err)
		require.Equal(t, "in-progress", resp.UserQuest.Status)
		require.Equal(t, 10, resp.UserQuest.Progress)
		require.NotEmpty(t, resp.UserQuest.StartedAt)
	}

	rows, err := repository.NewUserQuestRepository().GetByUserID(ctx, testutil.User2.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, entity.QuestInProgress, rows[0].Status)
	require.Equal(t, 10, rows[0].Progress)

	require.Equal(t, []string{"user-quests:user2", "user-quests:user2"}, deleted)
}

func Test_questDomain_Start_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})

	_, err := domain.Start(ctx, &model.StartQuestRequest{QuestID: testutil.Quest3.ID})
	require.ErrorIs(t, err, errorx.New(errorx.QuestCompleted, ""))

	_, err = domain.Start(ctx, &model.StartQuestRequest{QuestID: "unknown"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	_, err = domain.Start(ctx, &model.StartQuestRequest{})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_ToggleTask_RoundTrip(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	var deleted []string
	redisClient := &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	domain := newTestQuestDomain(redisClient, &testutil.MockPublisher{})
	progressOf := func() int {
		resp, err := domain.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest1.ID})
		require.NoError(t, err)
		return resp.Quest.Progress
	}

	before := progressOf()
	require.Equal(t, 33, before)

	resp, err := domain.ToggleTask(ctx, &model.ToggleTaskRequest{
		QuestID:     testutil.Quest1.ID,
		TaskID:      testutil.Task1_2.ID,
		IsCompleted: true,
	})
	require.NoError(t, err)
	require.True(t, resp.TaskProgress.IsCompleted)
	require.NotEmpty(t, resp.TaskProgress.CompletedAt)
	require.Equal(t, 67, progressOf())

	resp, err = domain.ToggleTask(ctx, &model.ToggleTaskRequest{
		QuestID:     testutil.Quest1.ID,
		TaskID:      testutil.Task1_2.ID,
		IsCompleted: false,
	})
	require.NoError(t, err)
	require.False(t, resp.TaskProgress.IsCompleted)
	require.Empty(t, resp.TaskProgress.CompletedAt)
	require.Equal(t, before, progressOf())

	require.Equal(t, []string{"user-task-progress:user1", "user-task-progress:user1"}, deleted)
}

func Test_questDomain_ToggleTask_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})

	_, err := domain.ToggleTask(ctx, &model.ToggleTaskRequest{
		QuestID: testutil.Quest2.ID, TaskID: testutil.Task1_1.ID, IsCompleted: true,
	})
	require.ErrorIs(t, err, errorx.New(errorx.TaskNotInQuest, ""))

	_, err = domain.ToggleTask(ctx, &model.ToggleTaskRequest{
		QuestID: testutil.Quest1.ID, TaskID: "unknown", IsCompleted: true,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	_, err = domain.ToggleTask(ctx, &model.ToggleTaskRequest{QuestID: testutil.Quest1.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_ToggleTask_CompletedQuest(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	for _, task := range []entity.QuestTask{testutil.Task1_2, testutil.Task1_3} {
		_, err := domain.ToggleTask(ctx, &model.ToggleTaskRequest{
			QuestID: testutil.Quest1.ID, TaskID: task.ID, IsCompleted: true,
		})
		require.NoError(t, err)
	}

	domain.publisher = &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, s string, p *pubsub.Pack) error { return nil },
	}
	_, err := domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
	require.NoError(t, err)

	_, err = domain.ToggleTask(ctx, &model.ToggleTaskRequest{
		QuestID: testutil.Quest1.ID, TaskID: testutil.Task1_1.ID, IsCompleted: false,
	})
	require.ErrorIs(t, err, errorx.New(errorx.QuestCompleted, ""))

	resp, err := domain.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest1.ID})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.Quest.Status)
	require.Equal(t, 100, resp.Quest.Progress)
}

func Test_questDomain_Complete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	var events []model.QuestCompletedEvent
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, "quest_completed", topic)
			require.Equal(t, testutil.User1.UserID, string(pack.Key))

			var event model.QuestCompletedEvent
			require.NoError(t, json.Unmarshal(pack.Msg, &event))
			events = append(events, event)
			return nil
		},
	}

	var deleted []string
	redisClient := &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	domain := newTestQuestDomain(redisClient, publisher)

	_, err := domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
	require.ErrorIs(t, err, errorx.New(errorx.TasksIncomplete, ""))
	require.Empty(t, events)

	for _, task := range []entity.QuestTask{testutil.Task1_2, testutil.Task1_3} {
		_, err := domain.ToggleTask(ctx, &model.ToggleTaskRequest{
			QuestID: testutil.Quest1.ID, TaskID: task.ID, IsCompleted: true,
		})
		require.NoError(t, err)
	}

	deleted = nil
	resp, err := domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.UserQuest.Status)
	require.Equal(t, 100, resp.UserQuest.Progress)
	require.NotEmpty(t, resp.UserQuest.CompletedAt)
	require.NotEmpty(t, resp.UserQuest.StartedAt)
	require.Equal(t, []string{"user-quests:user1", "leaderboard"}, deleted)

	require.Len(t, events, 1)
	require.Equal(t, testutil.Quest1.ID, events[0].QuestID)
	require.Equal(t, testutil.Quest1.Points, events[0].Points)

	// Completing again returns the stored row without a second event.
	resp, err = domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.UserQuest.Status)
	require.Len(t, events, 1)
}

func Test_questDomain_Complete_NotStarted(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	_, err := domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
	require.ErrorIs(t, err, errorx.New(errorx.QuestNotStarted, ""))

	_, err = domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: "unknown"})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))
}

func Test_questDomain_Complete_NoTasks(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.UserID)
	testutil.CreateFixtureDb(ctx)

	published := 0
	domain := newTestQuestDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			published++
			return nil
		},
	})

	_, err := domain.Start(ctx, &model.StartQuestRequest{QuestID: testutil.Quest3.ID})
	require.NoError(t, err)

	resp, err := domain.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest3.ID})
	require.NoError(t, err)
	require.Equal(t, 10, resp.Quest.Progress)
	require.True(t, resp.Quest.CanComplete)

	_, err = domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest3.ID})
	require.NoError(t, err)
	require.Equal(t, 1, published)

	resp, err = domain.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest3.ID})
	require.NoError(t, err)
	require.Equal(t, 100, resp.Quest.Progress)
	require.Equal(t, "completed", resp.Quest.Status)
}

func Test_questDomain_Complete_PublishFailure(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.UserID)
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	domain := newTestQuestDomain(&testutil.MockRedisClient{}, publisher)
	_, err := domain.Start(ctx, &model.StartQuestRequest{QuestID: testutil.Quest3.ID})
	require.NoError(t, err)

	// The default mock publisher always fails.
	resp, err := domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest3.ID})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.UserQuest.Status)
	require.Equal(t, []string{"quest_completed"}, publisher.Topics())

	row, err := repository.NewUserQuestRepository().Get(ctx, testutil.User2.UserID, testutil.Quest3.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestCompleted, row.Status)
}

func Test_questDomain_Complete_Concurrent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			return nil
		},
	}

	setup := newTestQuestDomain(&testutil.MockRedisClient{}, publisher)
	for _, task := range []entity.QuestTask{testutil.Task1_2, testutil.Task1_3} {
		_, err := setup.ToggleTask(ctx, &model.ToggleTaskRequest{
			QuestID: testutil.Quest1.ID, TaskID: task.ID, IsCompleted: true,
		})
		require.NoError(t, err)
	}

	domain := NewQuestDomain(
		repository.NewQuestRepository(),
		repository.NewQuestTaskRepository(),
		newGatedUserQuestRepository(2),
		repository.NewUserTaskProgressRepository(),
		&testutil.MockRedisClient{},
		publisher,
	)

	var wg sync.WaitGroup
	responses := make([]*model.CompleteQuestResponse, 2)
	errs := make([]error, 2)
	for i := range responses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			responses[i], errs[i] = domain.Complete(ctx, &model.CompleteQuestRequest{QuestID: testutil.Quest1.ID})
		}(i)
	}
	wg.Wait()

	for i := range responses {
		require.NoError(t, errs[i])
		require.Equal(t, "completed", responses[i].UserQuest.Status)
	}

	// Both requests saw the quest in progress but only one announces it.
	require.Equal(t, []string{"quest_completed"}, publisher.Topics())
}

func Test_questDomain_Start_StaleRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.UserID)
	testutil.CreateFixtureDb(ctx)

	domain := NewQuestDomain(
		repository.NewQuestRepository(),
		repository.NewQuestTaskRepository(),
		&staleUserQuestRepository{UserQuestRepository: repository.NewUserQuestRepository()},
		repository.NewUserTaskProgressRepository(),
		&testutil.MockRedisClient{},
		&testutil.MockPublisher{},
	)

	// The quest was completed between the read and the write.
	_, err := domain.Start(ctx, &model.StartQuestRequest{QuestID: testutil.Quest3.ID})
	require.ErrorIs(t, err, errorx.New(errorx.QuestCompleted, ""))

	row, err := repository.NewUserQuestRepository().Get(ctx, testutil.User1.UserID, testutil.Quest3.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestCompleted, row.Status)
	require.Equal(t, 100, row.Progress)
	require.True(t, row.CompletedAt.Valid)
}
