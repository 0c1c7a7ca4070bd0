package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/service/work"
	"sync"
)

var _ workService = &workServiceMock{}

type workServiceMock struct {
	CreateFunc       func(ctx context.Context, input work.CreateInput) (*domain.Work, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	FeedFunc         func(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, error)
	ListByAuthorFunc func(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error)
	LoadFunc         func(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	PublishFunc      func(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	SaveFunc         func(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error
	ToggleLikeFunc   func(ctx context.Context, id uuid.UUID) (bool, int, error)
	UnpublishFunc    func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input work.CreateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Feed []struct {
			Ctx   context.Context
			Typ   domain.WorkType
			Limit int
		}
		ListByAuthor []struct {
			Ctx      context.Context
			AuthorID uuid.UUID
			Status   domain.WorkStatus
		}
		Load []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Publish []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Patch domain.WorkPatch
		}
		Save []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Patch domain.WorkPatch
		}
		ToggleLike []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Unpublish []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockDelete       sync.RWMutex
	lockFeed         sync.RWMutex
	lockListByAuthor sync.RWMutex
	lockLoad         sync.RWMutex
	lockPublish      sync.RWMutex
	lockSave         sync.RWMutex
	lockToggleLike   sync.RWMutex
	lockUnpublish    sync.RWMutex
}

func (mock *workServiceMock) Create(ctx context.Context, input work.CreateInput) (*domain.Work, error) {
	if mock.CreateFunc == nil {
		panic("workServiceMock.CreateFunc: method is nil but workService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input work.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *workServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input work.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *workServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("workServiceMock.DeleteFunc: method is nil but workService.Delete was just called")
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

func (mock *workServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *workServiceMock) Feed(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, error) {
	if mock.FeedFunc == nil {
		panic("workServiceMock.FeedFunc: method is nil but workService.Feed was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Typ   domain.WorkType
		Limit int
	}{Ctx: ctx, Typ: typ, Limit: limit}
	mock.lockFeed.Lock()
	mock.calls.Feed = append(mock.calls.Feed, callInfo)
	mock.lockFeed.Unlock()
	return mock.FeedFunc(ctx, typ, limit)
}

func (mock *workServiceMock) FeedCalls() []struct {
	Ctx   context.Context
	Typ   domain.WorkType
	Limit int
} {
	mock.lockFeed.RLock()
	calls := mock.calls.Feed
	mock.lockFeed.RUnlock()
	return calls
}

func (mock *workServiceMock) ListByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error) {
	if mock.ListByAuthorFunc == nil {
		panic("workServiceMock.ListByAuthorFunc: method is nil but workService.ListByAuthor was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		AuthorID uuid.UUID
		Status   domain.WorkStatus
	}{Ctx: ctx, AuthorID: authorID, Status: status}
	mock.lockListByAuthor.Lock()
	mock.calls.ListByAuthor = append(mock.calls.ListByAuthor, callInfo)
	mock.lockListByAuthor.Unlock()
	return mock.ListByAuthorFunc(ctx, authorID, status)
}

func (mock *workServiceMock) ListByAuthorCalls() []struct {
	Ctx      context.Context
	AuthorID uuid.UUID
	Status   domain.WorkStatus
} {
	mock.lockListByAuthor.RLock()
	calls := mock.calls.ListByAuthor
	mock.lockListByAuthor.RUnlock()
	return calls
}

func (mock *workServiceMock) Load(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	if mock.LoadFunc == nil {
		panic("workServiceMock.LoadFunc: method is nil but workService.Load was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, id)
}

func (mock *workServiceMock) LoadCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *workServiceMock) Publish(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	if mock.PublishFunc == nil {
		panic("workServiceMock.PublishFunc: method is nil but workService.Publish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Patch domain.WorkPatch
	}{Ctx: ctx, ID: id, Patch: patch}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, id, patch)
}

func (mock *workServiceMock) PublishCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Patch domain.WorkPatch
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}

func (mock *workServiceMock) Save(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	if mock.SaveFunc == nil {
		panic("workServiceMock.SaveFunc: method is nil but workService.Save was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Patch domain.WorkPatch
	}{Ctx: ctx, ID: id, Patch: patch}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, id, patch)
}

func (mock *workServiceMock) SaveCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Patch domain.WorkPatch
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *workServiceMock) ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error) {
	if mock.ToggleLikeFunc == nil {
		panic("workServiceMock.ToggleLikeFunc: method is nil but workService.ToggleLike was just called")
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

func (mock *workServiceMock) ToggleLikeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockToggleLike.RLock()
	calls := mock.calls.ToggleLike
	mock.lockToggleLike.RUnlock()
	return calls
}

func (mock *workServiceMock) Unpublish(ctx context.Context, id uuid.UUID) error {
	if mock.UnpublishFunc == nil {
		panic("workServiceMock.UnpublishFunc: method is nil but workService.Unpublish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockUnpublish.Lock()
	mock.calls.Unpublish = append(mock.calls.Unpublish, callInfo)
	mock.lockUnpublish.Unlock()
	return mock.UnpublishFunc(ctx, id)
}

func (mock *workServiceMock) UnpublishCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockUnpublish.RLock()
	calls := mock.calls.Unpublish
	mock.lockUnpublish.RUnlock()
	return calls
}
