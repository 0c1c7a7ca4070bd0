package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ libraryService = &libraryServiceMock{}

type libraryServiceMock struct {
	CreateSaveFunc     func(ctx context.Context, save domain.Save) (domain.Save, error)
	DeleteSaveFunc     func(ctx context.Context, id uuid.UUID) error
	GetProgressFunc    func(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error)
	ListSavesFunc      func(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error)
	UpsertProgressFunc func(ctx context.Context, storyID uuid.UUID, chapterIndex int) error

	calls struct {
		CreateSave []struct {
			Ctx  context.Context
			Save domain.Save
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
			Ctx          context.Context
			StoryID      uuid.UUID
			ChapterIndex int
		}
	}
	lockCreateSave     sync.RWMutex
	lockDeleteSave     sync.RWMutex
	lockGetProgress    sync.RWMutex
	lockListSaves      sync.RWMutex
	lockUpsertProgress sync.RWMutex
}

func (mock *libraryServiceMock) CreateSave(ctx context.Context, save domain.Save) (domain.Save, error) {
	if mock.CreateSaveFunc == nil {
		panic("libraryServiceMock.CreateSaveFunc: method is nil but libraryService.CreateSave was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Save domain.Save
	}{Ctx: ctx, Save: save}
	mock.lockCreateSave.Lock()
	mock.calls.CreateSave = append(mock.calls.CreateSave, callInfo)
	mock.lockCreateSave.Unlock()
	return mock.CreateSaveFunc(ctx, save)
}

func (mock *libraryServiceMock) CreateSaveCalls() []struct {
	Ctx  context.Context
	Save domain.Save
} {
	mock.lockCreateSave.RLock()
	calls := mock.calls.CreateSave
	mock.lockCreateSave.RUnlock()
	return calls
}

func (mock *libraryServiceMock) DeleteSave(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteSaveFunc == nil {
		panic("libraryServiceMock.DeleteSaveFunc: method is nil but libraryService.DeleteSave was just called")
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

func (mock *libraryServiceMock) DeleteSaveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeleteSave.RLock()
	calls := mock.calls.DeleteSave
	mock.lockDeleteSave.RUnlock()
	return calls
}

func (mock *libraryServiceMock) GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error) {
	if mock.GetProgressFunc == nil {
		panic("libraryServiceMock.GetProgressFunc: method is nil but libraryService.GetProgress was just called")
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

func (mock *libraryServiceMock) GetProgressCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
} {
	mock.lockGetProgress.RLock()
	calls := mock.calls.GetProgress
	mock.lockGetProgress.RUnlock()
	return calls
}

func (mock *libraryServiceMock) ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error) {
	if mock.ListSavesFunc == nil {
		panic("libraryServiceMock.ListSavesFunc: method is nil but libraryService.ListSaves was just called")
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

func (mock *libraryServiceMock) ListSavesCalls() []struct {
	Ctx     context.Context
	StoryID uuid.UUID
} {
	mock.lockListSaves.RLock()
	calls := mock.calls.ListSaves
	mock.lockListSaves.RUnlock()
	return calls
}

func (mock *libraryServiceMock) UpsertProgress(ctx context.Context, storyID uuid.UUID, chapterIndex int) error {
	if mock.UpsertProgressFunc == nil {
		panic("libraryServiceMock.UpsertProgressFunc: method is nil but libraryService.UpsertProgress was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		StoryID      uuid.UUID
		ChapterIndex int
	}{Ctx: ctx, StoryID: storyID, ChapterIndex: chapterIndex}
	mock.lockUpsertProgress.Lock()
	mock.calls.UpsertProgress = append(mock.calls.UpsertProgress, callInfo)
	mock.lockUpsertProgress.Unlock()
	return mock.UpsertProgressFunc(ctx, storyID, chapterIndex)
}

func (mock *libraryServiceMock) UpsertProgressCalls() []struct {
	Ctx          context.Context
	StoryID      uuid.UUID
	ChapterIndex int
} {
	mock.lockUpsertProgress.RLock()
	calls := mock.calls.UpsertProgress
	mock.lockUpsertProgress.RUnlock()
	return calls
}
