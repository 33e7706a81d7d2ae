package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"userdesk/internal/client/controller"
	"userdesk/internal/client/prompt"
)

type usersClient struct {
	opts *rootOptions
}

type formFlags struct {
	name  string
	email string
	age   string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "User name")
	cmd.Flags().StringVar(&f.email, "email", "", "User email")
	cmd.Flags().StringVar(&f.age, "age", "", "User age")
}

// apply copies the flags the operator actually passed onto form.
func (f *formFlags) apply(cmd *cobra.Command, form controller.Form) controller.Form {
	if cmd.Flags().Changed("name") {
		form.Name = f.name
	}
	if cmd.Flags().Changed("email") {
		form.Email = f.email
	}
	if cmd.Flags().Changed("age") {
		form.Age = f.age
	}
	return form
}

func newUsersCmd(opts *rootOptions) *cobra.Command {
	u := &usersClient{opts: opts}
	cmd := &cobra.Command{Use: "users", Short: "Manage users"}
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List users", Args: cobra.NoArgs, RunE: u.list})
	cmd.AddCommand(&cobra.Command{Use: "get ID", Short: "Show one user", Args: cobra.ExactArgs(1), RunE: u.get})

	create := &formFlags{}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return u.create(cmd, create) },
	}
	create.register(createCmd)
	cmd.AddCommand(createCmd)

	update := &formFlags{}
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user; omitted fields keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return u.update(cmd, args[0], update) },
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return u.delete(cmd, args[0], yes) },
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(deleteCmd)
	return cmd
}

func (u *usersClient) static(cmd *cobra.Command) prompt.Static {
	return prompt.Static{Answer: true, Out: cmd.ErrOrStderr()}
}

func (u *usersClient) list(cmd *cobra.Command, args []string) error {
	w, err := u.opts.wire(cmd, u.static(cmd))
	if err != nil {
		return err
	}
	return w.ctrl.List(cmd.Context())
}

func (u *usersClient) get(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	w, err := u.opts.wire(cmd, u.static(cmd))
	if err != nil {
		return err
	}
	if err := w.ctrl.BeginEdit(cmd.Context(), id); err != nil {
		return err
	}
	f := w.ctrl.Form()
	fmt.Fprintf(cmd.OutOrStdout(), "ID:    %s\nName:  %s\nEmail: %s\nAge:   %s\n", f.ID, f.Name, f.Email, f.Age)
	return nil
}

func (u *usersClient) create(cmd *cobra.Command, flags *formFlags) error {
	w, err := u.opts.wire(cmd, u.static(cmd))
	if err != nil {
		return err
	}
	w.ctrl.SetForm(flags.apply(cmd, controller.Form{}))
	return w.ctrl.Submit(cmd.Context())
}

func (u *usersClient) update(cmd *cobra.Command, rawID string, flags *formFlags) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	w, err := u.opts.wire(cmd, u.static(cmd))
	if err != nil {
		return err
	}
	if err := w.ctrl.BeginEdit(cmd.Context(), id); err != nil {
		return err
	}
	w.ctrl.SetForm(flags.apply(cmd, w.ctrl.Form()))
	return w.ctrl.Submit(cmd.Context())
}

func (u *usersClient) delete(cmd *cobra.Command, rawID string, yes bool) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	var p controller.Prompter = u.static(cmd)
	if !yes {
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("refusing to delete user %d without a terminal; pass --yes", id)
		}
		driver := prompt.NewSurvey(os.Stdin, os.Stdout, cmd.ErrOrStderr())
		p = prompt.NewPrompter(cmd.Context(), driver, nil)
	}
	w, err := u.opts.wire(cmd, p)
	if err != nil {
		return err
	}
	return w.ctrl.Delete(cmd.Context(), id)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
