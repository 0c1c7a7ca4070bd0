package library

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	GetFunc    func(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) (domain.ReadingProgress, error)
	UpsertFunc func(ctx context.Context, p domain.ReadingProgress) error

	calls struct {
		Get []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			StoryID uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			P   domain.ReadingProgress
		}
	}
	lockGet    sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *progressRepoMock) Get(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) (domain.ReadingProgress, error) {
	if mock.GetFunc == nil {
		panic("progressRepoMock.GetFunc: method is nil but progressRepo.Get was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		StoryID uuid.UUID
	}{Ctx: ctx, UserID: userID, StoryID: storyID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, storyID)
}

func (mock *progressRepoMock) GetCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	StoryID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *progressRepoMock) Upsert(ctx context.Context, p domain.ReadingProgress) error {
	if mock.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.ReadingProgress
	}{Ctx: ctx, P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *progressRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   domain.ReadingProgress
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
