package users

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/julianstephens/leitstand/internal/auth"
	"github.com/julianstephens/leitstand/internal/cli"
	apperrors "github.com/julianstephens/leitstand/internal/errors"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/storage"
)

// PasswordPrompt reads a new password. Tests replace it.
var PasswordPrompt = func(label string) (string, error) {
	return auth.PromptPassword(os.Stderr, label, true)
}

func roleOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(auth.Roles()))
	for _, r := range auth.Roles() {
		opts = append(opts, huh.NewOption(string(r), string(r)))
	}
	return opts
}

func validateRole(role string) error {
	if !auth.Role(role).IsKnown() {
		names := make([]string, 0, len(auth.Roles()))
		for _, r := range auth.Roles() {
			names = append(names, string(r))
		}
		return fmt.Errorf("unknown role %q (expected one of %s)", role, strings.Join(names, ", "))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < auth.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	}
	return nil
}

type UserAddCmd struct {
	Username    string `arg:"" help:"Login name."`
	Role        string `short:"r" help:"Role (admin, verkehrsleiter, vertretung_verkehrsleiter, ueberwachung, personalabteilung, benutzer, readonly)."`
	DisplayName string `short:"n" help:"Name shown in the dashboard."`
}

// form asks for the missing role and display name
func (c *UserAddCmd) form() error {
	if c.Role == "" {
		c.Role = string(auth.RoleReadonly)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Rolle").
				Options(roleOptions()...).
				Value(&c.Role),
			huh.NewInput().
				Title("Anzeigename").
				Value(&c.DisplayName),
		),
	).Run()
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := storage.FindUser(ctx.Store, username); err == nil {
		return fmt.Errorf("user %q already exists", username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if c.Role == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := c.form(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return err
		}
	}
	if c.Role == "" {
		c.Role = string(auth.RoleReadonly)
	}
	if err := validateRole(c.Role); err != nil {
		return err
	}

	password, err := PasswordPrompt("Password")
	if err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     username,
		DisplayName:  strings.TrimSpace(c.DisplayName),
		Role:         c.Role,
		PasswordHash: hash,
	}
	id, err := storage.SaveRecord(ctx.Store, models.CollectionUsers, user)
	if err != nil {
		return err
	}
	ctx.Printf("Added user: %s (%s, ID: %s)\n", username, c.Role, id)
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	list, err := storage.Users(ctx.Store)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No users found")
		return nil
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Username) < strings.ToLower(list[j].Username)
	})

	rows := make([][]string, 0, len(list))
	for _, u := range list {
		perms := auth.ForUser(u)
		var viewable []string
		for _, area := range perms.Areas() {
			if perms.CanView(area) {
				viewable = append(viewable, string(area))
			}
		}
		rows = append(rows, []string{u.Username, u.DisplayName, u.Role, strings.Join(viewable, ", ")})
	}
	ctx.PrintTable([]string{"Benutzer", "Name", "Rolle", "Bereiche"}, rows)
	return nil
}

type UserPasswdCmd struct {
	Username string `arg:"" help:"Login name."`
}

func (c *UserPasswdCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	user, err := storage.FindUser(ctx.Store, c.Username)
	if err != nil {
		return err
	}

	password, err := PasswordPrompt("New password")
	if err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	user.PasswordHash, err = auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := storage.SaveRecord(ctx.Store, models.CollectionUsers, &user); err != nil {
		return err
	}
	ctx.Printf("Password updated for %s\n", user.Username)
	return nil
}

type UserRemoveCmd struct {
	Username string `arg:"" help:"Login name."`
	Yes      bool   `short:"y" help:"Remove without asking."`
}

func (c *UserRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	user, err := storage.FindUser(ctx.Store, c.Username)
	if err != nil {
		return err
	}

	ok, err := ctx.AskConfirm(fmt.Sprintf("Benutzer %q wirklich entfernen?", user.Username), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Remove cancelled.")
		return nil
	}
	if err := ctx.Store.Delete(models.CollectionUsers, user.ID); err != nil {
		return err
	}
	ctx.Printf("Removed user: %s\n", user.Username)
	return nil
}
