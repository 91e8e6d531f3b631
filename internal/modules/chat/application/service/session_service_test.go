package service

import (
	"context"
	"testing"
	"time"

	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"
	"FitBuddy/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHistoryMapsVersions(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("ListBySession", mock.Anything, "s1").Return([]entity.Message{
		{Id: "m1", SessionId: "s1", Role: "user", Content: "q"},
		{Id: "m2", SessionId: "s1", Role: "assistant", Content: "new answer", Versions: []entity.MessageVersion{
			{Content: "old answer", Model: "old-model"},
		}},
	}, nil)
	svc := NewSessionService(new(mockSessionRepo), messages)

	items, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Len(t, items[1].Versions, 1)
	assert.Equal(t, "old answer", items[1].Versions[0].Content)
}

func TestHistoryRequiresSessionID(t *testing.T) {
	svc := NewSessionService(new(mockSessionRepo), new(mockMessageRepo))
	_, err := svc.History(context.Background(), "")
	require.Error(t, err)
}

func TestListReturnsSummaries(t *testing.T) {
	sessions := new(mockSessionRepo)
	sessions.On("ListActive", mock.Anything, "u1").Return([]chatRepository.SessionSummary{
		{Session: entity.Session{Id: "s1", UserId: "u1", Title: "Leg day"}, MessageCount: 4},
	}, nil)
	svc := NewSessionService(sessions, new(mockMessageRepo))

	items, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].MessageCount)
}

func TestMigrateRequiresAuth(t *testing.T) {
	svc := NewSessionService(new(mockSessionRepo), new(mockMessageRepo))
	_, err := svc.Migrate(context.Background(), "", request.MigrateSessionRequest{SessionId: "s1"})
	assert.Equal(t, xerr.ErrUnauthorized, err)
}

func TestMigrateNoOpWhenAlreadyOwned(t *testing.T) {
	sessions := new(mockSessionRepo)
	sessions.On("GetByID", mock.Anything, "s1").Return(&entity.Session{Id: "s1", UserId: "other"}, nil)
	messages := new(mockMessageRepo)
	svc := NewSessionService(sessions, messages)

	migrated, err := svc.Migrate(context.Background(), "u1", request.MigrateSessionRequest{
		SessionId: "s1",
		Messages:  []request.MigratedMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Zero(t, migrated)
	sessions.AssertNotCalled(t, "AttachOwner", mock.Anything, mock.Anything)
	messages.AssertNotCalled(t, "CreateSkipDuplicates", mock.Anything, mock.Anything)
}

func TestMigrateAttachesOwnerAndMessages(t *testing.T) {
	sessions := new(mockSessionRepo)
	sessions.On("GetByID", mock.Anything, "s1").Return(nil, gorm.ErrRecordNotFound)
	sessions.On("AttachOwner", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.Id == "s1" && s.UserId == "u1" && s.Title == "Guest chat"
	})).Return(nil)

	messages := new(mockMessageRepo)
	messages.On("CreateSkipDuplicates", mock.Anything, mock.MatchedBy(func(msgs []*entity.Message) bool {
		return len(msgs) == 2 && msgs[0].SessionId == "s1" && msgs[0].Id != "" && msgs[1].Id != ""
	})).Return(nil)

	svc := NewSessionService(sessions, messages)
	migrated, err := svc.Migrate(context.Background(), "u1", request.MigrateSessionRequest{
		SessionId: "s1",
		Title:     "Guest chat",
		Messages: []request.MigratedMessage{
			{Role: "user", Content: "hello", CreatedAt: time.Now().Format(time.RFC3339)},
			{Role: "assistant", Content: "Hi!", Model: "m"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)
	sessions.AssertExpectations(t)
	messages.AssertExpectations(t)
}

func TestMigrateDerivesDeterministicIDs(t *testing.T) {
	sessions := new(mockSessionRepo)
	sessions.On("GetByID", mock.Anything, "s1").Return(nil, gorm.ErrRecordNotFound)
	sessions.On("AttachOwner", mock.Anything, mock.Anything).Return(nil)

	var firstIDs, secondIDs []string
	messages := new(mockMessageRepo)
	messages.On("CreateSkipDuplicates", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		msgs := args.Get(1).([]*entity.Message)
		ids := make([]string, 0, len(msgs))
		for _, m := range msgs {
			ids = append(ids, m.Id)
		}
		if firstIDs == nil {
			firstIDs = ids
		} else {
			secondIDs = ids
		}
	}).Return(nil)

	svc := NewSessionService(sessions, messages)
	req := request.MigrateSessionRequest{
		SessionId: "s1",
		Messages: []request.MigratedMessage{
			{Role: "user", Content: "hello", CreatedAt: "2026-01-02T10:00:00Z"},
		},
	}
	_, err := svc.Migrate(context.Background(), "u1", req)
	require.NoError(t, err)
	_, err = svc.Migrate(context.Background(), "u1", req)
	require.NoError(t, err)

	// 同一条消息重放迁移得到同一个 id，配合跳过冲突插入实现幂等
	assert.Equal(t, firstIDs, secondIDs)
}

func TestDeleteMessagePairsUserWithAssistant(t *testing.T) {
	userAt := time.Now().Add(-time.Minute)
	userMsg := &entity.Message{Id: "m1", SessionId: "s1", Role: "user", CreatedAt: userAt}
	assistantMsg := &entity.Message{Id: "m2", SessionId: "s1", Role: "assistant", CreatedAt: userAt.Add(time.Second)}

	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, "m1").Return(userMsg, nil)
	messages.On("FindNextAssistantAfter", mock.Anything, "s1", userAt).Return(assistantMsg, nil)
	messages.On("Delete", mock.Anything, "m2").Return(nil).Once()
	messages.On("Delete", mock.Anything, "m1").Return(nil).Once()

	svc := NewSessionService(new(mockSessionRepo), messages)
	deleted, err := svc.DeleteMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m1"}, deleted)
	messages.AssertExpectations(t)
}

func TestDeleteMessageAssistantAlone(t *testing.T) {
	assistantMsg := &entity.Message{Id: "m2", SessionId: "s1", Role: "assistant", CreatedAt: time.Now()}

	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, "m2").Return(assistantMsg, nil)
	messages.On("Delete", mock.Anything, "m2").Return(nil).Once()

	svc := NewSessionService(new(mockSessionRepo), messages)
	deleted, err := svc.DeleteMessage(context.Background(), "m2")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, deleted)
	messages.AssertNotCalled(t, "FindNextAssistantAfter", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteMessageUserWithoutReply(t *testing.T) {
	userMsg := &entity.Message{Id: "m1", SessionId: "s1", Role: "user", CreatedAt: time.Now()}

	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, "m1").Return(userMsg, nil)
	messages.On("FindNextAssistantAfter", mock.Anything, "s1", userMsg.CreatedAt).
		Return(nil, gorm.ErrRecordNotFound)
	messages.On("Delete", mock.Anything, "m1").Return(nil).Once()

	svc := NewSessionService(new(mockSessionRepo), messages)
	deleted, err := svc.DeleteMessage(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, deleted)
}

func TestDeleteMessageNotFound(t *testing.T) {
	messages := new(mockMessageRepo)
	messages.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewSessionService(new(mockSessionRepo), messages)
	_, err := svc.DeleteMessage(context.Background(), "missing")
	require.Error(t, err)
	ce, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.NotFound, ce.Code)
}
