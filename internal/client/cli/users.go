package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) listUsers(ctx context.Context) error {
	if err := a.users.Refresh(ctx); err != nil {
		return err
	}
	current, err := a.prefs.CurrentUser(ctx)
	if err != nil {
		return err
	}
	printUsers(a.out, a.users.State().Users, current)
	return nil
}

func (a *App) findUser(ctx context.Context, id string) (*models.User, error) {
	if err := a.users.Refresh(ctx); err != nil {
		return nil, err
	}
	for _, u := range a.users.State().Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("unknown user %s", id)
}

// addUser signs a user up, prompting for whatever was not given.
func (a *App) addUser(ctx context.Context, name, email string) error {
	var err error
	if name == "" {
		if name, err = GetSimpleText(a.in, "Name", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = GetSimpleText(a.in, "Email", a.out); err != nil {
			return err
		}
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	u, err := a.users.Create(ctx, models.UserInput{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created user %s\n", u.ID)
	return nil
}

// editUser sends a full profile update. Empty name or email keep the
// stored values and the password is only asked for when changePassword.
func (a *App) editUser(ctx context.Context, id, name, email string, changePassword bool) error {
	u, err := a.findUser(ctx, id)
	if err != nil {
		return err
	}

	in := models.UserInput{Name: u.Name, Email: u.Email}
	if name != "" {
		in.Name = name
	}
	if email != "" {
		in.Email = email
	}
	if changePassword {
		if in.Password, err = GetPassword(a.out, "New password"); err != nil {
			return err
		}
	}
	return a.users.Update(ctx, id, in)
}

func (a *App) removeUser(ctx context.Context, id string) error {
	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	current, err := a.prefs.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == id {
		return a.prefs.SetCurrentUser(ctx, "")
	}
	return nil
}

func (a *App) useUser(ctx context.Context, id string) error {
	u, err := a.findUser(ctx, id)
	if err != nil {
		return err
	}
	if err := a.prefs.SetCurrentUser(ctx, u.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Now working as %s <%s>\n", u.Name, u.Email)
	return nil
}

func newUsersCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"u"},
		Short:   "Manage users",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users with their task counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().listUsers(cmd.Context())
		},
	}

	add := &cobra.Command{
		Use:   "add [name] [email]",
		Short: "Sign a new user up",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, email string
			if len(args) > 0 {
				name = args[0]
			}
			if len(args) > 1 {
				email = args[1]
			}
			return app().addUser(cmd.Context(), name, email)
		},
	}

	var name, email string
	var password bool
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().editUser(cmd.Context(), args[0], name, email, password)
		},
	}
	edit.Flags().StringVar(&name, "name", "", "new name")
	edit.Flags().StringVar(&email, "email", "", "new email")
	edit.Flags().BoolVar(&password, "password", false, "prompt for a new password")

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a user and all of their tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().removeUser(cmd.Context(), args[0])
		},
	}

	use := &cobra.Command{
		Use:   "use <id>",
		Short: "Select the user new tasks are created for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().useUser(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, add, edit, rm, use)
	return cmd
}
