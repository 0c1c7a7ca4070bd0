package editor

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ workStore = &workStoreMock{}

type workStoreMock struct {
	CreateWorkFunc         func(ctx context.Context, w *domain.Work) (*domain.Work, error)
	DeleteWorkFunc         func(ctx context.Context, id uuid.UUID) error
	LoadWorkFunc           func(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	QueryWorksByAuthorFunc func(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error)
	SaveWorkFunc           func(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error

	calls struct {
		CreateWork []struct {
			Ctx context.Context
			W   *domain.Work
		}
		DeleteWork []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		LoadWork []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		QueryWorksByAuthor []struct {
			Ctx      context.Context
			AuthorID uuid.UUID
			Status   domain.WorkStatus
		}
		SaveWork []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Patch domain.WorkPatch
		}
	}
	lockCreateWork         sync.RWMutex
	lockDeleteWork         sync.RWMutex
	lockLoadWork           sync.RWMutex
	lockQueryWorksByAuthor sync.RWMutex
	lockSaveWork           sync.RWMutex
}

func (mock *workStoreMock) CreateWork(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	if mock.CreateWorkFunc == nil {
		panic("workStoreMock.CreateWorkFunc: method is nil but workStore.CreateWork was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   *domain.Work
	}{Ctx: ctx, W: w}
	mock.lockCreateWork.Lock()
	mock.calls.CreateWork = append(mock.calls.CreateWork, callInfo)
	mock.lockCreateWork.Unlock()
	return mock.CreateWorkFunc(ctx, w)
}

func (mock *workStoreMock) CreateWorkCalls() []struct {
	Ctx context.Context
	W   *domain.Work
} {
	mock.lockCreateWork.RLock()
	calls := mock.calls.CreateWork
	mock.lockCreateWork.RUnlock()
	return calls
}

func (mock *workStoreMock) DeleteWork(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteWorkFunc == nil {
		panic("workStoreMock.DeleteWorkFunc: method is nil but workStore.DeleteWork was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDeleteWork.Lock()
	mock.calls.DeleteWork = append(mock.calls.DeleteWork, callInfo)
	mock.lockDeleteWork.Unlock()
	return mock.DeleteWorkFunc(ctx, id)
}

func (mock *workStoreMock) DeleteWorkCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeleteWork.RLock()
	calls := mock.calls.DeleteWork
	mock.lockDeleteWork.RUnlock()
	return calls
}

func (mock *workStoreMock) LoadWork(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	if mock.LoadWorkFunc == nil {
		panic("workStoreMock.LoadWorkFunc: method is nil but workStore.LoadWork was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLoadWork.Lock()
	mock.calls.LoadWork = append(mock.calls.LoadWork, callInfo)
	mock.lockLoadWork.Unlock()
	return mock.LoadWorkFunc(ctx, id)
}

func (mock *workStoreMock) LoadWorkCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLoadWork.RLock()
	calls := mock.calls.LoadWork
	mock.lockLoadWork.RUnlock()
	return calls
}

func (mock *workStoreMock) QueryWorksByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error) {
	if mock.QueryWorksByAuthorFunc == nil {
		panic("workStoreMock.QueryWorksByAuthorFunc: method is nil but workStore.QueryWorksByAuthor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		AuthorID uuid.UUID
		Status   domain.WorkStatus
	}{Ctx: ctx, AuthorID: authorID, Status: status}
	mock.lockQueryWorksByAuthor.Lock()
	mock.calls.QueryWorksByAuthor = append(mock.calls.QueryWorksByAuthor, callInfo)
	mock.lockQueryWorksByAuthor.Unlock()
	return mock.QueryWorksByAuthorFunc(ctx, authorID, status)
}

func (mock *workStoreMock) QueryWorksByAuthorCalls() []struct {
	Ctx      context.Context
	AuthorID uuid.UUID
	Status   domain.WorkStatus
} {
	mock.lockQueryWorksByAuthor.RLock()
	calls := mock.calls.QueryWorksByAuthor
	mock.lockQueryWorksByAuthor.RUnlock()
	return calls
}

func (mock *workStoreMock) SaveWork(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	if mock.SaveWorkFunc == nil {
		panic("workStoreMock.SaveWorkFunc: method is nil but workStore.SaveWork was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Patch domain.WorkPatch
	}{Ctx: ctx, ID: id, Patch: patch}
	mock.lockSaveWork.Lock()
	mock.calls.SaveWork = append(mock.calls.SaveWork, callInfo)
	mock.lockSaveWork.Unlock()
	return mock.SaveWorkFunc(ctx, id, patch)
}

func (mock *workStoreMock) SaveWorkCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Patch domain.WorkPatch
} {
	mock.lockSaveWork.RLock()
	calls := mock.calls.SaveWork
	mock.lockSaveWork.RUnlock()
	return calls
}
