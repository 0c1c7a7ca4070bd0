package profile

import (
	"context"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ workRepo = &workRepoMock{}

type workRepoMock struct {
	ListFunc func(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error)

	calls struct {
		List []struct {
			Ctx context.Context
			F   domain.WorkFilter
		}
	}
	lockList sync.RWMutex
}

func (mock *workRepoMock) List(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error) {
	if mock.ListFunc == nil {
		panic("workRepoMock.ListFunc: method is nil but workRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.WorkFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *workRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.WorkFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
