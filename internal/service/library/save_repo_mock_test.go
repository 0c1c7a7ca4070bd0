package library

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ saveRepo = &saveRepoMock{}

type saveRepoMock struct {
	CreateFunc func(ctx context.Context, s domain.Save) (domain.Save, error)
	DeleteFunc func(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ListFunc   func(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) ([]domain.Save, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			S   domain.Save
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     uuid.UUID
		}
		List []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			StoryID uuid.UUID
		}
	}
	lockCreate sync.RWMutex
	lockDelete sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *saveRepoMock) Create(ctx context.Context, s domain.Save) (domain.Save, error) {
	if mock.CreateFunc == nil {
		panic("saveRepoMock.CreateFunc: method is nil but saveRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.Save
	}{Ctx: ctx, S: s}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *saveRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   domain.Save
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *saveRepoMock) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("saveRepoMock.DeleteFunc: method is nil but saveRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     uuid.UUID
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *saveRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *saveRepoMock) List(ctx context.Context, userID uuid.UUID, storyID uuid.UUID) ([]domain.Save, error) {
	if mock.ListFunc == nil {
		panic("saveRepoMock.ListFunc: method is nil but saveRepo.List was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		StoryID uuid.UUID
	}{Ctx: ctx, UserID: userID, StoryID: storyID}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, storyID)
}

func (mock *saveRepoMock) ListCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	StoryID uuid.UUID
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
