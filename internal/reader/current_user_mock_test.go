package reader

import (
	"github.com/quietpage/quietpage/internal/domain"
	"sync"
)

var _ currentUser = &currentUserMock{}

type currentUserMock struct {
	CurrentUserFunc func() *domain.User

	calls struct {
		CurrentUser []struct{}
	}
	lockCurrentUser sync.RWMutex
}

func (mock *currentUserMock) CurrentUser() *domain.User {
	if mock.CurrentUserFunc == nil {
		panic("currentUserMock.CurrentUserFunc: method is nil but currentUser.CurrentUser was just called")
	}
	mock.lockCurrentUser.Lock()
	mock.calls.CurrentUser = append(mock.calls.CurrentUser, struct{}{})
	mock.lockCurrentUser.Unlock()
	return mock.CurrentUserFunc()
}

func (mock *currentUserMock) CurrentUserCalls() []struct{} {
	mock.lockCurrentUser.RLock()
	calls := mock.calls.CurrentUser
	mock.lockCurrentUser.RUnlock()
	return calls
}
