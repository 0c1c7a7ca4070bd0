package work

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ workRepo = &workRepoMock{}

type workRepoMock struct {
	CreateFunc     func(ctx context.Context, w *domain.Work) (*domain.Work, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	ListFunc       func(ctx context.Context, f domain.WorkFilter) ([]domain.Work, error)
	ToggleLikeFunc func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, int, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error

	calls struct {
		Create []struct {
			Ctx context.Context
			W   *domain.Work
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.WorkFilter
		}
		ToggleLike []struct {
			Ctx    context.Context
			ID     uuid.UUID
			UserID uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			P   domain.WorkPatch
		}
	}
	lockCreate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockList       sync.RWMutex
	lockToggleLike sync.RWMutex
	lockUpdate     sync.RWMutex
}

func (mock *workRepoMock) Create(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	if mock.CreateFunc == nil {
		panic("workRepoMock.CreateFunc: method is nil but workRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   *domain.Work
	}{Ctx: ctx, W: w}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, w)
}

func (mock *workRepoMock) CreateCalls() []struct {
	Ctx context.Context
	W   *domain.Work
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *workRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("workRepoMock.DeleteFunc: method is nil but workRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *workRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *workRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	if mock.GetByIDFunc == nil {
		panic("workRepoMock.GetByIDFunc: method is nil but workRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *workRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
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

func (mock *workRepoMock) ToggleLike(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, int, error) {
	if mock.ToggleLikeFunc == nil {
		panic("workRepoMock.ToggleLikeFunc: method is nil but workRepo.ToggleLike was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, ID: id, UserID: userID}
	mock.lockToggleLike.Lock()
	mock.calls.ToggleLike = append(mock.calls.ToggleLike, callInfo)
	mock.lockToggleLike.Unlock()
	return mock.ToggleLikeFunc(ctx, id, userID)
}

func (mock *workRepoMock) ToggleLikeCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	UserID uuid.UUID
} {
	mock.lockToggleLike.RLock()
	calls := mock.calls.ToggleLike
	mock.lockToggleLike.RUnlock()
	return calls
}

func (mock *workRepoMock) Update(ctx context.Context, id uuid.UUID, p domain.WorkPatch) error {
	if mock.UpdateFunc == nil {
		panic("workRepoMock.UpdateFunc: method is nil but workRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		P   domain.WorkPatch
	}{Ctx: ctx, ID: id, P: p}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, p)
}

func (mock *workRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	P   domain.WorkPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
