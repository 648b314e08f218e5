package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"complainhub/pkg/errors"
)

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// TokenClaims carries the identity fields the profile upsert needs.
type TokenClaims struct {
	UID   string
	Email string
	Name  string
}

func (f *FirebaseAuthClient) VerifyTokenClaims(ctx context.Context, token string) (*TokenClaims, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{UID: result.UID}
	if email, ok := result.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := result.Claims["name"].(string); ok {
		claims.Name = name
	}
	if claims.Name == "" {
		claims.Name = claims.Email
	}

	return claims, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IdToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalId      string `json:"localId"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithEmailPassword authenticates against the Identity Toolkit REST API
// (the Admin SDK cannot verify passwords) and returns the resulting ID token.
// Recognized provider error codes map one-to-one to user-facing errors.
func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, error) {
	if f.apiKey == "" {
		return "", errors.Internal("Authentication provider is not configured", nil)
	}

	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", errors.Internal("Failed to encode sign-in request", err)
	}

	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errors.Internal("Authentication provider unreachable", err)
	}
	defer resp.Body.Close()

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Internal("Failed to decode sign-in response", err)
	}

	if resp.StatusCode != http.StatusOK {
		code := ""
		if result.Error != nil {
			code = result.Error.Message
		}
		return "", MapSignInError(code)
	}

	return result.IdToken, nil
}

// MapSignInError translates Identity Toolkit error codes into the fixed set
// of user-facing messages. Unrecognized codes fall through to a generic one.
func MapSignInError(code string) *errors.AppError {
	// Codes can arrive suffixed, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	code = strings.SplitN(code, " ", 2)[0]

	switch code {
	case "EMAIL_NOT_FOUND":
		return errors.Unauthorized("No user found with this email.", nil)
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.Unauthorized("Incorrect password. Please try again.", nil)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.TooManyRequests("Too many failed attempts. Please try again later.", nil)
	case "USER_DISABLED":
		return errors.Forbidden("This account has been disabled.", nil)
	default:
		return errors.Unauthorized("An error occurred during sign-in. Please try again.", nil)
	}
}

// AuthUser is the provider-side account record, as listed for the admin
// panel's auth-users view.
type AuthUser struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhoneNumber   string `json:"phoneNumber"`
	PhotoUrl      string `json:"photoUrl"`
	ProviderId    string `json:"providerId"`
	EmailVerified bool   `json:"emailVerified"`
	Disabled      bool   `json:"disabled"`
}

func (f *FirebaseAuthClient) ListUsers(ctx context.Context) ([]AuthUser, error) {
	var users []AuthUser

	iter := f.client.Users(ctx, "")
	for {
		record, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		users = append(users, AuthUser{
			UID:           record.UID,
			Email:         record.Email,
			DisplayName:   record.DisplayName,
			PhoneNumber:   record.PhoneNumber,
			PhotoUrl:      record.PhotoURL,
			ProviderId:    record.ProviderID,
			EmailVerified: record.EmailVerified,
			Disabled:      record.Disabled,
		})
	}

	return users, nil
}

// TestConnection exercises the Auth API with a single-page list call.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	iter := f.client.Users(ctx, "")
	_, err := iter.Next()
	if err == iterator.Done {
		return nil
	}
	return err
}
