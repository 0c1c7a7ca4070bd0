package profile

import (
	"context"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByHandleFunc func(ctx context.Context, handle string) (*domain.User, error)

	calls struct {
		GetByHandle []struct {
			Ctx    context.Context
			Handle string
		}
	}
	lockGetByHandle sync.RWMutex
}

func (mock *userRepoMock) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	if mock.GetByHandleFunc == nil {
		panic("userRepoMock.GetByHandleFunc: method is nil but userRepo.GetByHandle was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Handle string
	}{Ctx: ctx, Handle: handle}
	mock.lockGetByHandle.Lock()
	mock.calls.GetByHandle = append(mock.calls.GetByHandle, callInfo)
	mock.lockGetByHandle.Unlock()
	return mock.GetByHandleFunc(ctx, handle)
}

func (mock *userRepoMock) GetByHandleCalls() []struct {
	Ctx    context.Context
	Handle string
} {
	mock.lockGetByHandle.RLock()
	calls := mock.calls.GetByHandle
	mock.lockGetByHandle.RUnlock()
	return calls
}
