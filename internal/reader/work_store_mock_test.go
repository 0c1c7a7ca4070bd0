package reader

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ workStore = &workStoreMock{}

type workStoreMock struct {
	LoadWorkFunc   func(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	SaveWorkFunc   func(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	ToggleLikeFunc func(ctx context.Context, id uuid.UUID) (bool, int, error)

	calls struct {
		LoadWork []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SaveWork []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Patch domain.WorkPatch
		}
		ToggleLike []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockLoadWork   sync.RWMutex
	lockSaveWork   sync.RWMutex
	lockToggleLike sync.RWMutex
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

func (mock *workStoreMock) ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error) {
	if mock.ToggleLikeFunc == nil {
		panic("workStoreMock.ToggleLikeFunc: method is nil but workStore.ToggleLike was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockToggleLike.Lock()
	mock.calls.ToggleLike = append(mock.calls.ToggleLike, callInfo)
	mock.lockToggleLike.Unlock()
	return mock.ToggleLikeFunc(ctx, id)
}

func (mock *workStoreMock) ToggleLikeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockToggleLike.RLock()
	calls := mock.calls.ToggleLike
	mock.lockToggleLike.RUnlock()
	return calls
}
