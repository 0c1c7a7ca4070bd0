package session

import (
	"context"
	"github.com/quietpage/quietpage/internal/adapter/api"
	"sync"
)

var _ identity = &identityMock{}

type identityMock struct {
	LoginFederatedFunc func(ctx context.Context, provider string, code string) (*api.Session, error)
	LoginPasswordFunc  func(ctx context.Context, email string, password string) (*api.Session, error)
	LogoutFunc         func(ctx context.Context) error
	RefreshFunc        func(ctx context.Context, refreshToken string) (*api.Session, error)
	RegisterFunc       func(ctx context.Context, email string, password string, displayName string) (*api.Session, error)
	SetTokensFunc      func(t api.Tokens)

	calls struct {
		LoginFederated []struct {
			Ctx      context.Context
			Provider string
			Code     string
		}
		LoginPassword []struct {
			Ctx      context.Context
			Email    string
			Password string
		}
		Logout []struct {
			Ctx context.Context
		}
		Refresh []struct {
			Ctx          context.Context
			RefreshToken string
		}
		Register []struct {
			Ctx         context.Context
			Email       string
			Password    string
			DisplayName string
		}
		SetTokens []struct {
			T api.Tokens
		}
	}
	lockLoginFederated sync.RWMutex
	lockLoginPassword  sync.RWMutex
	lockLogout         sync.RWMutex
	lockRefresh        sync.RWMutex
	lockRegister       sync.RWMutex
	lockSetTokens      sync.RWMutex
}

func (mock *identityMock) LoginFederated(ctx context.Context, provider string, code string) (*api.Session, error) {
	if mock.LoginFederatedFunc == nil {
		panic("identityMock.LoginFederatedFunc: method is nil but identity.LoginFederated was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Provider string
		Code     string
	}{Ctx: ctx, Provider: provider, Code: code}
	mock.lockLoginFederated.Lock()
	mock.calls.LoginFederated = append(mock.calls.LoginFederated, callInfo)
	mock.lockLoginFederated.Unlock()
	return mock.LoginFederatedFunc(ctx, provider, code)
}

func (mock *identityMock) LoginFederatedCalls() []struct {
	Ctx      context.Context
	Provider string
	Code     string
} {
	mock.lockLoginFederated.RLock()
	calls := mock.calls.LoginFederated
	mock.lockLoginFederated.RUnlock()
	return calls
}

func (mock *identityMock) LoginPassword(ctx context.Context, email string, password string) (*api.Session, error) {
	if mock.LoginPasswordFunc == nil {
		panic("identityMock.LoginPasswordFunc: method is nil but identity.LoginPassword was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Email    string
		Password string
	}{Ctx: ctx, Email: email, Password: password}
	mock.lockLoginPassword.Lock()
	mock.calls.LoginPassword = append(mock.calls.LoginPassword, callInfo)
	mock.lockLoginPassword.Unlock()
	return mock.LoginPasswordFunc(ctx, email, password)
}

func (mock *identityMock) LoginPasswordCalls() []struct {
	Ctx      context.Context
	Email    string
	Password string
} {
	mock.lockLoginPassword.RLock()
	calls := mock.calls.LoginPassword
	mock.lockLoginPassword.RUnlock()
	return calls
}

func (mock *identityMock) Logout(ctx context.Context) error {
	if mock.LogoutFunc == nil {
		panic("identityMock.LogoutFunc: method is nil but identity.Logout was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLogout.Lock()
	mock.calls.Logout = append(mock.calls.Logout, callInfo)
	mock.lockLogout.Unlock()
	return mock.LogoutFunc(ctx)
}

func (mock *identityMock) LogoutCalls() []struct {
	Ctx context.Context
} {
	mock.lockLogout.RLock()
	calls := mock.calls.Logout
	mock.lockLogout.RUnlock()
	return calls
}

func (mock *identityMock) Refresh(ctx context.Context, refreshToken string) (*api.Session, error) {
	if mock.RefreshFunc == nil {
		panic("identityMock.RefreshFunc: method is nil but identity.Refresh was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RefreshToken string
	}{Ctx: ctx, RefreshToken: refreshToken}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, refreshToken)
}

func (mock *identityMock) RefreshCalls() []struct {
	Ctx          context.Context
	RefreshToken string
} {
	mock.lockRefresh.RLock()
	calls := mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}

func (mock *identityMock) Register(ctx context.Context, email string, password string, displayName string) (*api.Session, error) {
	if mock.RegisterFunc == nil {
		panic("identityMock.RegisterFunc: method is nil but identity.Register was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Email       string
		Password    string
		DisplayName string
	}{Ctx: ctx, Email: email, Password: password, DisplayName: displayName}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, email, password, displayName)
}

func (mock *identityMock) RegisterCalls() []struct {
	Ctx         context.Context
	Email       string
	Password    string
	DisplayName string
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}

func (mock *identityMock) SetTokens(t api.Tokens) {
	if mock.SetTokensFunc == nil {
		panic("identityMock.SetTokensFunc: method is nil but identity.SetTokens was just called")
	}
	callInfo := struct {
		T api.Tokens
	}{T: t}
	mock.lockSetTokens.Lock()
	mock.calls.SetTokens = append(mock.calls.SetTokens, callInfo)
	mock.lockSetTokens.Unlock()
	mock.SetTokensFunc(t)
}

func (mock *identityMock) SetTokensCalls() []struct {
	T api.Tokens
} {
	mock.lockSetTokens.RLock()
	calls := mock.calls.SetTokens
	mock.lockSetTokens.RUnlock()
	return calls
}
