package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dishcovery/dishcovery/internal/common"
)

// Profile fetches a fresh copy of the profile and prints it with stats.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.session.RefreshProfile(ctx)
	if err != nil {
		// Fall back to the local snapshot when the backend is out of
		// reach; the profile screen stays usable offline.
		user = a.session.CurrentUser(ctx)
		if user == nil {
			printUserError(err)
			return err
		}
		printlnFn("(showing cached profile)")
	}

	printlnFn(fmt.Sprintf("%s %s", user.FullName(), user.DisplayUsername()))
	printlnFn(fmt.Sprintf("Email:   %s", user.Email))
	printlnFn(fmt.Sprintf("Avatar:  %s", user.AvatarURL()))
	printlnFn(fmt.Sprintf("Tried %d recipes, %d favourites, %d reviews",
		user.Stats.RecipesTried, user.Stats.Favourites, user.Stats.Reviews))
	return nil
}

// EditProfile updates first/last name and optionally the avatar image.
// Empty answers leave a field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	current := a.session.CurrentUser(ctx)
	if current == nil {
		printlnFn("Log in first.")
		return common.ErrUnauthenticated
	}

	firstName, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s]", current.FirstName), os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s]", current.LastName), os.Stdout)
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if firstName != "" && firstName != current.FirstName {
		fields["firstName"] = firstName
	}
	if lastName != "" && lastName != current.LastName {
		fields["lastName"] = lastName
	}

	if len(fields) > 0 {
		if _, err := a.session.UpdateProfile(ctx, fields); err != nil {
			printUserError(err)
			return err
		}
	}

	imagePath, err := getSimpleText(a.reader, "Avatar image path (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath != "" {
		url, err := a.session.UploadAvatar(ctx, imagePath)
		if err != nil {
			printUserError(err)
			return err
		}
		printlnFn(fmt.Sprintf("Avatar updated: %s", url))
	}

	printlnFn("Profile saved.")
	return nil
}

// ChangePassword prompts for the old and new passwords and applies the
// change. All inputs are wiped.
func (a *App) ChangePassword(ctx context.Context) error {
	oldPw, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)

	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.session.ChangePassword(ctx, string(oldPw), string(newPw), string(confirm)); err != nil {
		printUserError(err)
		return err
	}

	printlnFn("Password changed.")
	return nil
}
