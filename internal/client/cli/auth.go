package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/client/client"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("username %q is taken", userName)
		}
		return err
	}

	fmt.Fprintln(a.out, "Success! You can login now.")
	return nil
}

// Login prompts for credentials, obtains a token and caches it in the token
// file.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid credentials")
		}
		return err
	}

	if err := a.tokens.Save(token); err != nil {
		fmt.Fprintln(a.out, "Warning: token not cached:", err)
	}
	a.userName = userName
	a.loggedIn = true
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the token in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.userName = ""
	a.loggedIn = false
	return a.tokens.Clear()
}

// checkSession turns an expired or rejected token into a logged-out state.
func (a *App) checkSession(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.Logout(ctx)
		return errors.New("session expired, please login again")
	}
	return err
}
