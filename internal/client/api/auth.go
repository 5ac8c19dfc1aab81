package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/common"
)

// AuthResult is the login/signup success payload.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Login exchanges credentials for a token and profile. A success response
// missing either the token or the user is a fatal shape violation, not
// something to silently accept.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, common.ErrInvalidCredentials)
	}

	return decodeAuthResult(resp)
}

// Signup creates an account and signs the new user in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/signup", body, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return decodeAuthResult(resp)
	}

	// The backend reports an existing account either as 409 or as a plain
	// 4xx with an "already exists" message.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		msg := serverMessage(resp)
		if resp.StatusCode == http.StatusConflict || strings.Contains(strings.ToLower(msg), "exist") {
			if msg == "" {
				return nil, common.ErrDuplicateAccount
			}
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicateAccount, msg)
		}
		if msg == "" {
			return nil, fmt.Errorf("server returned %s", resp.Status)
		}
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, msg)
	}

	return nil, responseError(resp, common.ErrInvalidCredentials)
}

func decodeAuthResult(resp *http.Response) (*AuthResult, error) {
	var result AuthResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.User.ID == "" {
		return nil, fmt.Errorf("%w: missing token or user", common.ErrInvalidServerResponse)
	}
	return &result, nil
}

// Me fetches the caller's profile. The response must be application/json;
// anything else is a protocol violation and is rejected before parsing.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/auth/me", nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, common.ErrUnauthenticated)
	}

	var user models.UserProfile
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: profile missing id", common.ErrInvalidServerResponse)
	}
	return &user, nil
}

// UpdateProfile sends a partial profile update and returns the profile the
// backend echoes back, when it echoes one.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.UserProfile, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/users/me", fields, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp, common.ErrUnauthenticated)
	}

	var user models.UserProfile
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadAvatar uploads a new profile image as multipart form data and
// returns the URL the backend assigned.
func (c *Client) UploadAvatar(ctx context.Context, imagePath string) (string, error) {
	form, err := newImageForm("profileImage", imagePath, nil)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/users/me/avatar", form.body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.contentType)
	if err := c.authorize(req); err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp, common.ErrUnauthenticated)
	}

	var result struct {
		ProfileImage string `json:"profileImage"`
	}
	if err := decodeJSON(resp, &result); err != nil {
		return "", err
	}
	if result.ProfileImage == "" {
		return "", fmt.Errorf("%w: missing profileImage", common.ErrInvalidServerResponse)
	}
	return result.ProfileImage, nil
}

// ChangePassword verifies the old password and sets the new one. The
// backend signals a wrong old password the same way as bad credentials.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/users/me/password", body, true)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp, common.ErrInvalidCredentials)
	}
	return nil
}

// ForgotPassword starts the reset flow by asking the backend to send a
// verification code to the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/forgot-password", body, false)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp, common.ErrInvalidCredentials)
	}
	return nil
}

// VerifyResetCode checks the emailed 6-digit code.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/verify-code", body, false)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp, common.ErrInvalidCredentials)
	}
	return nil
}

// ResetPassword completes the reset flow with the verified code and the
// new password.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/reset-password", body, false)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp, common.ErrInvalidCredentials)
	}
	return nil
}
