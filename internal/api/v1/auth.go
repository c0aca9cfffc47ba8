package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/auth"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type RegisterInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"8" maxLength:"128" doc:"Password"`
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Role     string `json:"role" enum:"client,freelancer" doc:"Account role"`
	}
}

type RegisterOutput struct {
	Body struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"`
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"`
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"`
	}
}

type OAuthURLInput struct {
	Provider string `path:"provider" enum:"google,github" doc:"OAuth provider"`
	State    string `query:"state" doc:"Opaque state round-tripped to the callback"`
}

type OAuthURLOutput struct {
	Body struct {
		URL string `json:"url"`
	}
}

type OAuthExchangeInput struct {
	Provider string `path:"provider" enum:"google,github" doc:"OAuth provider"`
	Body     struct {
		Code string `json:"code" minLength:"1" doc:"Authorization code from the provider callback"`
	}
}

type OAuthExchangeOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService, providers map[string]*auth.OAuthProvider) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/auth/register",
		Summary:     "Register a new user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := authSvc.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name, domain.Role(input.Body.Role))
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("user already exists")
			}
			return nil, huma.Error500InternalServerError("failed to register user", err)
		}

		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("registered but failed to issue tokens", err)
		}

		user.PasswordHash = ""

		out := &RegisterOutput{}
		out.Body.User = user
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "oauth-url",
		Method:      http.MethodGet,
		Path:        "/auth/oauth/{provider}/url",
		Summary:     "Get the OAuth authorization URL",
		Tags:        []string{"Auth"},
	}, func(_ context.Context, input *OAuthURLInput) (*OAuthURLOutput, error) {
		provider, ok := providers[input.Provider]
		if !ok {
			return nil, huma.Error404NotFound("oauth provider not configured")
		}

		out := &OAuthURLOutput{}
		out.Body.URL = provider.AuthorizationURL(input.State)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "oauth-exchange",
		Method:      http.MethodPost,
		Path:        "/auth/oauth/{provider}/exchange",
		Summary:     "Exchange an OAuth code for tokens",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *OAuthExchangeInput) (*OAuthExchangeOutput, error) {
		provider, ok := providers[input.Provider]
		if !ok {
			return nil, huma.Error404NotFound("oauth provider not configured")
		}

		email, name, err := provider.ExchangeCode(ctx, input.Body.Code)
		if err != nil {
			return nil, huma.Error401Unauthorized("oauth exchange failed")
		}

		accessToken, refreshToken, err := authSvc.LoginOAuth(ctx, email, name)
		if err != nil {
			return nil, huma.Error500InternalServerError("oauth sign-in failed", err)
		}

		out := &OAuthExchangeOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})
}
