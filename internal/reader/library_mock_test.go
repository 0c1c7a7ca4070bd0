package reader

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ library = &libraryMock{}

type libraryMock struct {
	CreateSaveFunc     func(ctx context.Context, storyID uuid.UUID) (domain.Save, error)
	DeleteSaveFunc     func(ctx context.Context, id uuid.UUID) error
	GetProgressFunc    func(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error)
	ListSavesFunc      func(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error)
	UpsertProgressFunc func(ctx context.Context, storyID uuid.UUID, idx int) error

	calls struct {
		CreateSave []struct {
			Ctx     context.Context
			StoryID uuid.UUID
		}
		DeleteSave []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetProgress []struct {
			Ctx     context.Context
			StoryID uuid.UUID
		}
		ListSaves []struct {
			Ctx     context.Context
			StoryID uuid.UUID
		}
		UpsertProgress []struct {
			Ctx     context.Context
			StoryID uuid.UUID
			Idx     int
		}
	}
	lockCreateSave     sync.RWMutex
	lockDeleteSave     sync.RWMutex
	lockGetProgress    sync.RWMutex
	lockListSaves      sync.RWMutex
	lockUpsertProgress sync.RWMutex
}

func (mock *libraryMock) CreateSave(ctx context.Context, storyID uuid.UUID) (domain.Save, error) {
	if mock.CreateSaveFunc == nil {
		panic("libraryMock.CreateSaveFunc: method is nil but library.CreateSave was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		StoryID uuid.UUID
	}{Ctx: ctx, StoryID: storyID}
	mock.lockCreateSave.Lock()
	mock.calls.CreateSave = append(mock.calls.CreateSave, callInfo)
	mock.lockCreateSave.Unlock()
	return mock.CreateSaveFunc(ctx, storyID)
}

func (mock *libraryMock) CreateSaveCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
} {
	mock.lockCreateSave.RLock()
	calls := mock.calls.CreateSave
	mock.lockCreateSave.RUnlock()
	return calls
}

func (mock *libraryMock) DeleteSave(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteSaveFunc == nil {
		panic("libraryMock.DeleteSaveFunc: method is nil but library.DeleteSave was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDeleteSave.Lock()
	mock.calls.DeleteSave = append(mock.calls.DeleteSave, callInfo)
	mock.lockDeleteSave.Unlock()
	return mock.DeleteSaveFunc(ctx, id)
}

func (mock *libraryMock) DeleteSaveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeleteSave.RLock()
	calls := mock.calls.DeleteSave
	mock.lockDeleteSave.RUnlock()
	return calls
}

func (mock *libraryMock) GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error) {
	if mock.GetProgressFunc == nil {
		panic("libraryMock.GetProgressFunc: method is nil but library.GetProgress was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		StoryID uuid.UUID
	}{Ctx: ctx, StoryID: storyID}
	mock.lockGetProgress.Lock()
	mock.calls.GetProgress = append(mock.calls.GetProgress, callInfo)
	mock.lockGetProgress.Unlock()
	return mock.GetProgressFunc(ctx, storyID)
}

func (mock *libraryMock) GetProgressCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
} {
	mock.lockGetProgress.RLock()
	calls := mock.calls.GetProgress
	mock.lockGetProgress.RUnlock()
	return calls
}

func (mock *libraryMock) ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error) {
	if mock.ListSavesFunc == nil {
		panic("libraryMock.ListSavesFunc: method is nil but library.ListSaves was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		StoryID uuid.UUID
	}{Ctx: ctx, StoryID: storyID}
	mock.lockListSaves.Lock()
	mock.calls.ListSaves = append(mock.calls.ListSaves, callInfo)
	mock.lockListSaves.Unlock()
	return mock.ListSavesFunc(ctx, storyID)
}

func (mock *libraryMock) ListSavesCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
} {
	mock.lockListSaves.RLock()
	calls := mock.calls.ListSaves
	mock.lockListSaves.RUnlock()
	return calls
}

func (mock *libraryMock) UpsertProgress(ctx context.Context, storyID uuid.UUID, idx int) error {
	if mock.UpsertProgressFunc == nil {
		panic("libraryMock.UpsertProgressFunc: method is nil but library.UpsertProgress was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		StoryID uuid.UUID
		Idx     int
	}{Ctx: ctx, StoryID: storyID, Idx: idx}
	mock.lockUpsertProgress.Lock()
	mock.calls.UpsertProgress = append(mock.calls.UpsertProgress, callInfo)
	mock.lockUpsertProgress.Unlock()
	return mock.UpsertProgressFunc(ctx, storyID, idx)
}

func (mock *libraryMock) UpsertProgressCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
	Idx     int
} {
	mock.lockUpsertProgress.RLock()
	calls := mock.calls.UpsertProgress
	mock.lockUpsertProgress.RUnlock()
	return calls
}
